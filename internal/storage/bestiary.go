package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/initiative-tracker/pkg/bestiary"
)

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

func (r *RedisStorage) GetMonster(ctx context.Context, id string) (*bestiary.Monster, error) {
	path := filepath.Join(r.dataDir, "monsters", id+".yaml")
	r.logger.Debug("Loading monster template", "id", id, "full_path", path)

	m, err := bestiary.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("Monster template file not found", "path", path)
			return nil, nil
		}
		return nil, err
	}

	// Filename overrides any id in the YAML
	m.ID = id

	return m, nil
}

func (r *RedisStorage) ListMonsters(ctx context.Context) (map[string]string, error) {
	monstersDir := filepath.Join(r.dataDir, "monsters")
	monsters := make(map[string]string)

	if _, err := os.Stat(monstersDir); os.IsNotExist(err) {
		r.logger.Debug("Monsters directory does not exist", "path", monstersDir)
		return monsters, nil // Return empty map if directory doesn't exist
	}

	err := filepath.WalkDir(monstersDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !isYAML(path) {
			return nil
		}

		m, err := bestiary.Load(path)
		if err != nil {
			r.logger.Warn("Skipping unreadable monster file", "path", path, "error", err)
			return nil
		}

		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		monsters[m.Name] = id
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to walk monsters directory", "error", err)
		return nil, fmt.Errorf("failed to list monsters: %w", err)
	}

	return monsters, nil
}
