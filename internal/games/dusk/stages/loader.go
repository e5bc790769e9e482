package stages

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.yaml
var embedded embed.FS

// Loader reads stage files from a filesystem.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: "."}
}

// Embedded returns a loader over the stages compiled into the binary.
func Embedded() *Loader {
	return &Loader{FS: embedded, Root: "data"}
}

// LoadAll recursively loads every stage file.
// Returns stages sorted by Order, then ID, for deterministic menus.
// Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Stage, error) {
	var stages []Stage

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		st, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		stages = append(stages, st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("stages: walking %s: %w", l.Root, err)
	}

	sort.Slice(stages, func(i, j int) bool {
		if stages[i].Order != stages[j].Order {
			return stages[i].Order < stages[j].Order
		}
		return stages[i].ID < stages[j].ID
	})
	return stages, nil
}

// LoadFile loads a single stage file.
func (l *Loader) LoadFile(p string) (Stage, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Stage{}, fmt.Errorf("stages: reading %s: %w", p, err)
	}
	st, err := ParseYAML(data)
	if err != nil {
		return Stage{}, fmt.Errorf("stages: parsing %s: %w", p, err)
	}
	st.FilePath = p
	return st, nil
}

// LoadByID loads a specific stage by ID.
func (l *Loader) LoadByID(id string) (Stage, error) {
	stages, err := l.LoadAll()
	if err != nil {
		return Stage{}, err
	}
	for _, st := range stages {
		if st.ID == id {
			return st, nil
		}
	}
	return Stage{}, fmt.Errorf("stages: not found: %s", id)
}

// ListIDs returns all stage IDs in menu order.
func (l *Loader) ListIDs() ([]string, error) {
	stages, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(stages))
	for i, st := range stages {
		ids[i] = st.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
