package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV stores every key in a single JSON document on disk.
// The file is read on each Get so external edits and restores are picked up.
type FileKV struct {
	path string
}

func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

func (s *FileKV) Open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (s *FileKV) Close() error {
	return nil
}

func (s *FileKV) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage file %s: %w", s.path, err)
	}
	return doc, nil
}

// write replaces the file atomically via a temp file and rename
func (s *FileKV) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *FileKV) Get(key string) ([]byte, bool, error) {
	doc, err := s.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	// the document is stored indented; hand back the value as it was set
	var buf bytes.Buffer
	if err := json.Compact(&buf, v); err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return buf.Bytes(), true, nil
}

func (s *FileKV) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)
	return s.write(doc)
}

func (s *FileKV) Remove(key string) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.write(doc)
}

func (s *FileKV) Location() string {
	return s.path
}
