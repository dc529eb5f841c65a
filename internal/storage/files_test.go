package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func fileStorage(t *testing.T) (*RedisStorage, string) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	dataDir := t.TempDir()
	return NewRedisStorage(mr.Addr(), dataDir, testLogger()), dataDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const goblinYAML = `id: goblin
name: Goblin
type: humanoid
cr: "1/4"
ac: 15
hp: 7
`

const ogreYAML = `id: ogre
name: Ogre
type: giant
cr: "2"
ac: 11
hp: 59
`

const brynnJSON = `{
  "id": "brynn",
  "name": "Brynn Ironvale",
  "class": "Fighter",
  "level": 5,
  "max_hp": 44,
  "ac": 18
}`

func TestGetMonster(t *testing.T) {
	store, dataDir := fileStorage(t)
	writeFile(t, filepath.Join(dataDir, "monsters", "goblin.yaml"), goblinYAML)

	m, err := store.GetMonster(context.Background(), "goblin")
	if err != nil {
		t.Fatalf("GetMonster() error = %v", err)
	}
	if m == nil {
		t.Fatal("GetMonster() = nil for existing template")
	}
	if m.Name != "Goblin" || m.HP != 7 || m.AC != 15 {
		t.Errorf("monster = %+v", m)
	}
	if m.ID != "goblin" {
		t.Errorf("ID = %q, want filename id", m.ID)
	}
}

func TestGetMonsterNotFound(t *testing.T) {
	store, _ := fileStorage(t)

	m, err := store.GetMonster(context.Background(), "tarrasque")
	if err != nil {
		t.Fatalf("GetMonster() error = %v", err)
	}
	if m != nil {
		t.Errorf("GetMonster() = %+v, want nil", m)
	}
}

func TestListMonsters(t *testing.T) {
	store, dataDir := fileStorage(t)
	writeFile(t, filepath.Join(dataDir, "monsters", "goblin.yaml"), goblinYAML)
	writeFile(t, filepath.Join(dataDir, "monsters", "ogre.yaml"), ogreYAML)
	writeFile(t, filepath.Join(dataDir, "monsters", "broken.yaml"), "name: [unclosed")
	writeFile(t, filepath.Join(dataDir, "monsters", "notes.txt"), "not a template")

	monsters, err := store.ListMonsters(context.Background())
	if err != nil {
		t.Fatalf("ListMonsters() error = %v", err)
	}
	if len(monsters) != 2 {
		t.Fatalf("len(monsters) = %d, want 2: %v", len(monsters), monsters)
	}
	if monsters["Goblin"] != "goblin" || monsters["Ogre"] != "ogre" {
		t.Errorf("monsters = %v", monsters)
	}
}

func TestListMonstersNoDirectory(t *testing.T) {
	store, _ := fileStorage(t)

	monsters, err := store.ListMonsters(context.Background())
	if err != nil {
		t.Fatalf("ListMonsters() error = %v", err)
	}
	if len(monsters) != 0 {
		t.Errorf("monsters = %v, want empty", monsters)
	}
}

func TestGetPartyMember(t *testing.T) {
	store, dataDir := fileStorage(t)
	writeFile(t, filepath.Join(dataDir, "pcs", "brynn.json"), brynnJSON)

	spec, err := store.GetPartyMember(context.Background(), "brynn")
	if err != nil {
		t.Fatalf("GetPartyMember() error = %v", err)
	}
	if spec == nil {
		t.Fatal("GetPartyMember() = nil for existing sheet")
	}
	if spec.Name != "Brynn Ironvale" || spec.Level != 5 || spec.MaxHP != 44 {
		t.Errorf("spec = %+v", spec)
	}
	if spec.ID != "brynn" {
		t.Errorf("ID = %q, want filename id", spec.ID)
	}
}

func TestGetPartyMemberNotFound(t *testing.T) {
	store, _ := fileStorage(t)

	spec, err := store.GetPartyMember(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetPartyMember() error = %v", err)
	}
	if spec != nil {
		t.Errorf("GetPartyMember() = %+v, want nil", spec)
	}
}

func TestListPartyMembers(t *testing.T) {
	store, dataDir := fileStorage(t)
	writeFile(t, filepath.Join(dataDir, "pcs", "brynn.json"), brynnJSON)
	writeFile(t, filepath.Join(dataDir, "pcs", "mira.json"), `{"id":"mira","name":"Mira","max_hp":30,"ac":14}`)
	writeFile(t, filepath.Join(dataDir, "pcs", "readme.md"), "not a sheet")

	ids, err := store.ListPartyMembers(context.Background())
	if err != nil {
		t.Fatalf("ListPartyMembers() error = %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 entries", ids)
	}
	if ids[0] != "brynn" || ids[1] != "mira" {
		t.Errorf("ids = %v", ids)
	}
}

func TestListPartyMembersNoDirectory(t *testing.T) {
	store, _ := fileStorage(t)

	ids, err := store.ListPartyMembers(context.Background())
	if err != nil {
		t.Fatalf("ListPartyMembers() error = %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}
