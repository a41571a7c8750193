package scoreboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const FileName = "scoreboard.json"

// FileStore keeps the record as a JSON document next to the server. A
// save writes a temp file in the same directory and renames it over the
// old one, so a crash mid-write never leaves a torn record behind.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (fs *FileStore) Path() string {
	return filepath.Join(fs.dir, FileName)
}

func (fs *FileStore) Load(ctx context.Context) (Record, error) {
	data, err := os.ReadFile(fs.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, nil
		}
		return Record{}, err
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("corrupt scoreboard file %s: %w", fs.Path(), err)
	}
	return record, nil
}

func (fs *FileStore) Save(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.dir, FileName+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	// best effort; after a successful rename the path is gone
	defer os.Remove(tmpPath)

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, fs.Path()); err != nil {
		return err
	}
	return syncDir(fs.dir)
}

// syncDir flushes the directory entry so a completed rename survives a crash.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}
