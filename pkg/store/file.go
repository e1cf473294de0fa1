package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	fio "github.com/matzehuels/familytower/pkg/io"
)

// FileStore keeps each family as <dir>/<id>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/familytower/families/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "familytower", "families")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) familyPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Load(ctx context.Context, id string) (family.Family, error) {
	if err := ferrors.ValidateFamilyID(id); err != nil {
		return family.Family{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.familyPath(id))
	if os.IsNotExist(err) {
		return family.Family{}, notFound(id)
	}
	if err != nil {
		return family.Family{}, fmt.Errorf("read family file: %w", err)
	}
	f, err := fio.ReadFamily(bytes.NewReader(data), fio.FormatJSON)
	if err != nil {
		return family.Family{}, fmt.Errorf("family %s: %w", id, err)
	}
	return f, nil
}

func (s *FileStore) Save(ctx context.Context, id string, f family.Family) error {
	if err := ferrors.ValidateFamilyID(id); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := fio.WriteFamily(&buf, f, fio.FormatJSON); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.familyPath(id), buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write family file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ferrors.ValidateFamilyID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.familyPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove family file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	ids := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for family files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
