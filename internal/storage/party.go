package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/initiative-tracker/pkg/party"
)

func (r *RedisStorage) GetPartyMember(ctx context.Context, id string) (*party.MemberSpec, error) {
	path := filepath.Join(r.dataDir, "pcs", id+".json")

	spec, err := party.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("PC file not found", "path", path)
			return nil, nil
		}
		return nil, err
	}

	// Filename overrides any ID in the JSON
	spec.ID = id

	return spec, nil
}

func (r *RedisStorage) ListPartyMembers(ctx context.Context) ([]string, error) {
	pcsPath := filepath.Join(r.dataDir, "pcs")

	entries, err := os.ReadDir(pcsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read PCs directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}

	return ids, nil
}
