package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	tfjson "github.com/hashicorp/terraform-json"
	"go.uber.org/zap"
)

// ErrUnavailable is returned when no snapshot file exists.
var ErrUnavailable = errors.New("state snapshot not available")

// Parse extracts managed resource entries from a `terraform show -json` document.
func Parse(data []byte) ([]Entry, error) {
	var st tfjson.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to parse state snapshot: %w", err)
	}

	if st.Values == nil || st.Values.RootModule == nil {
		return nil, nil
	}

	var entries []Entry
	walkModule(st.Values.RootModule, func(r *tfjson.StateResource) {
		if r.Mode != tfjson.ManagedResourceMode {
			return
		}
		id, ok := r.AttributeValues["id"].(string)
		if !ok || id == "" {
			return
		}
		entries = append(entries, Entry{Type: r.Type, ID: id})
	})

	return entries, nil
}

func walkModule(m *tfjson.StateModule, fn func(*tfjson.StateResource)) {
	if m == nil {
		return
	}
	for _, r := range m.Resources {
		if r != nil {
			fn(r)
		}
	}
	for _, child := range m.ChildModules {
		walkModule(child, fn)
	}
}

// LoadFile reads and parses a snapshot file. A missing file yields ErrUnavailable.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, path)
		}
		return nil, fmt.Errorf("failed to read state snapshot %s: %w", path, err)
	}
	return Parse(data)
}

// LoadIndex loads the snapshot at path into an Index. It never fails: an
// absent snapshot is reported at info level, an unreadable one at warn level,
// and both produce an empty index.
func LoadIndex(path string, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		logger.Info("No state snapshot configured, every resource will be imported")
		return NewIndex(nil)
	}

	entries, err := LoadFile(path)
	switch {
	case errors.Is(err, ErrUnavailable):
		logger.Info("State snapshot not found, every resource will be imported", zap.String("path", path))
		return NewIndex(nil)
	case err != nil:
		logger.Warn("State snapshot unreadable, every resource will be imported",
			zap.String("path", path),
			zap.Error(err),
		)
		return NewIndex(nil)
	}

	idx := NewIndex(entries)
	logger.Info("Loaded state snapshot", zap.String("path", path), zap.Int("resources", idx.Len()))
	return idx
}
