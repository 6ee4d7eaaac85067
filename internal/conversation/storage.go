package conversation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Store persists conversation histories as JSON files in a directory.
// Files are named conversation_YYYYMMDD_HHMMSS.json.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the history to a new timestamped file and returns its path.
func (s *Store) Save(h *History) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create conversations directory: %w", err)
	}

	name := fmt.Sprintf("conversation_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write conversation file: %w", err)
	}

	return path, nil
}

// List returns all saved histories, newest first.
func (s *Store) List() ([]*History, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read conversations directory: %w", err)
	}

	var histories []*History
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		h, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		histories = append(histories, h)
	}

	sort.Slice(histories, func(i, j int) bool {
		return histories[i].UpdatedAt.After(histories[j].UpdatedAt)
	})

	return histories, nil
}

// Load reads a saved history by file name. The .json suffix is optional.
func (s *Store) Load(name string) (*History, error) {
	name = s.normalize(name)

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation file: %w", err)
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}

	h.Name = name
	return &h, nil
}

// Delete removes a saved history by file name.
func (s *Store) Delete(name string) error {
	name = s.normalize(name)

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (s *Store) normalize(name string) string {
	name = filepath.Base(name)
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}
