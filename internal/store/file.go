package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/tgienger/kanbatryoshka/internal/nest"
)

// FileStore keeps the nest as a single JSON document
type FileStore struct {
	Path string
}

// Load reads the document at Path. A missing file is reported as nest.ErrNoDocument.
func (s *FileStore) Load(n *nest.Nest) error {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nest.ErrNoDocument
		}
		return err
	}
	if err := n.Decode(bytes.NewReader(b)); err != nil {
		return fmt.Errorf("load %s: %w", s.Path, err)
	}
	log.WithFields(log.Fields{"path": s.Path, "boards": len(n.Boards())}).Debug("loaded nest")
	return nil
}

// Save writes the document to a temp file next to Path and renames it into place,
// so readers never observe a partially written file.
func (s *FileStore) Save(n *nest.Nest) error {
	var buf bytes.Buffer
	if err := n.Encode(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": s.Path, "boards": len(n.Boards())}).Debug("saved nest")
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
