package terraform

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"okta-import/core/utils"
)

// ConsolidatedFile is the generated file at the environment root.
const ConsolidatedFile = "_consolidated.tf"

// ErrNoConfiguration is returned when a directory has no root .tf file
// declaring a terraform block.
var ErrNoConfiguration = errors.New("directory has no .tf file with a terraform {} block")

var separator = "# " + strings.Repeat("=", 76) + "\n"

// ValidateDir checks that dir holds a root module.
func ValidateDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.tf"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if bytes.Contains(data, []byte("terraform {")) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoConfiguration, dir)
}

// Consolidate concatenates the .tf files of every subdirectory of dir into
// ConsolidatedFile. Hidden directories such as .terraform are skipped.
// It returns the number of files appended.
func Consolidate(dir string) (int, error) {
	var buf bytes.Buffer
	count := 0

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".tf" || filepath.Dir(path) == filepath.Clean(dir) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		buf.WriteString("\n")
		buf.WriteString(separator)
		fmt.Fprintf(&buf, "# Source: %s\n", filepath.ToSlash(rel))
		buf.WriteString(separator)
		buf.WriteString("\n")
		buf.Write(data)
		buf.WriteString("\n")
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := utils.WriteFileAtomic(filepath.Join(dir, ConsolidatedFile), buf.Bytes(), 0o644); err != nil {
		return 0, err
	}
	return count, nil
}

// Cleanup removes ConsolidatedFile from dir if present.
func Cleanup(dir string) error {
	err := os.Remove(filepath.Join(dir, ConsolidatedFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
