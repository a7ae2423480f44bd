package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"wikitree/internal/model"

	"github.com/charmbracelet/log"
)

const (
	sqliteFileName = "nav.sqlite"
	seedFileName   = "seed.yaml"

	DefaultWorkspace = "default"
)

// Store persists one workspace's navigation forest under Dir.
type Store struct {
	Dir string
	Log *log.Logger
}

func (s Store) logger() *log.Logger {
	if s.Log != nil {
		return s.Log
	}
	return log.Default()
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.New("workspace name must be a plain directory name")
	}
	return name, nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// SeedPath is the optional per-workspace seed consulted on first load.
func (s Store) SeedPath() string {
	return filepath.Join(s.Dir, seedFileName)
}

// Load returns the persisted forest. A workspace that has never been saved is
// seeded first, from SeedPath when present, else from the built-in seed.
func (s Store) Load(ctx context.Context) (model.Forest, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	initialized, err := readMeta(ctx, db, metaInitialized)
	if err != nil {
		return nil, err
	}
	if initialized == "" {
		seed, src, err := s.InitialSeed()
		if err != nil {
			return nil, err
		}
		s.logger().Debug("seeding workspace", "dir", s.Dir, "source", src, "nodes", seed.Count())
		if err := saveForest(ctx, db, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	return loadForest(ctx, db)
}

// Save replaces the persisted forest in one transaction; on error the previous
// forest is left intact.
func (s Store) Save(ctx context.Context, f model.Forest) error {
	if err := f.Validate(); err != nil {
		return err
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := saveForest(ctx, db, f); err != nil {
		return err
	}
	s.logger().Debug("saved forest", "dir", s.Dir, "nodes", f.Count())
	return nil
}

// Initialized reports whether a forest has ever been saved in this workspace.
func (s Store) Initialized(ctx context.Context) (bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()
	v, err := readMeta(ctx, db, metaInitialized)
	return v != "", err
}

// InitialSeed returns the forest a fresh workspace starts with and where it
// came from ("builtin" or the seed file path).
func (s Store) InitialSeed() (model.Forest, string, error) {
	if _, err := os.Stat(s.SeedPath()); err == nil {
		f, err := LoadSeedFile(s.SeedPath())
		return f, s.SeedPath(), err
	}
	f, err := DefaultSeed()
	return f, "builtin", err
}
