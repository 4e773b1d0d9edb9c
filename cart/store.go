package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// CartKey is the fixed key the serialized line list is stored under.
const CartKey = "cart"

// Store persists the serialized cart-line list. Load on open, Save on every
// mutation.
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// FileStore keeps the cart as a JSON file in a directory, one file per cart
// key. Writes replace the whole file; the last writer wins.
type FileStore struct {
	Dir string
	Key string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir, Key: CartKey}
}

func (fs *FileStore) path() string {
	return filepath.Join(fs.Dir, fs.Key+".json")
}

func (fs *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(fs.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (fs *FileStore) Save(lines []Line) error {
	if err := os.MkdirAll(fs.Dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path(), data, 0o644)
}
