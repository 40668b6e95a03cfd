// Package store persists a nest as a whole document, either as a JSON file or in a sqlite database.
package store

import (
	"path/filepath"
	"strings"

	"github.com/tgienger/kanbatryoshka/internal/db"
	"github.com/tgienger/kanbatryoshka/internal/nest"
)

// Store saves and loads complete nest documents
type Store interface {
	// Load replaces n's state with the stored document, or returns nest.ErrNoDocument
	Load(n *nest.Nest) error
	Save(n *nest.Nest) error
	Close() error
}

// Open picks a backend from the file extension: .json files are written as documents,
// anything else is treated as a sqlite database.
func Open(path string) (Store, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return &FileStore{Path: path}, nil
	}
	database, err := db.New(path)
	if err != nil {
		return nil, err
	}
	return database, nil
}

// DefaultPath is where the nest lives when no path is configured
func DefaultPath() (string, error) {
	return db.DefaultPath()
}
