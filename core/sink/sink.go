package sink

import (
	"context"
	"path/filepath"

	"okta-import/core/utils"
)

const (
	// TypeFile writes artifacts next to the Terraform configuration.
	TypeFile = "file"
	// TypeObject uploads artifacts to object storage.
	TypeObject = "s3"
)

// Config holds configuration for the output sink.
type Config struct {
	// Type selects the sink (file, s3).
	Type string `mapstructure:"type" default:"file"`
	// FileName is the artifact name inside each kind directory.
	FileName string `mapstructure:"file_name" default:"import.tf"`
}

// Sink persists the artifact of one kind.
type Sink interface {
	// Write stores body as the artifact of kind and returns where it went.
	Write(ctx context.Context, kind string, body []byte) (string, error)
}

// FileSink writes artifacts under a root directory.
type FileSink struct {
	root     string
	fileName string
}

// NewFileSink creates a sink rooted at dir.
func NewFileSink(dir, fileName string) *FileSink {
	if fileName == "" {
		fileName = "import.tf"
	}
	return &FileSink{root: dir, fileName: fileName}
}

// Path returns the artifact path of kind.
func (s *FileSink) Path(kind string) string {
	return filepath.Join(s.root, kind, s.fileName)
}

// Write atomically replaces the artifact of kind.
func (s *FileSink) Write(ctx context.Context, kind string, body []byte) (string, error) {
	target := s.Path(kind)
	if err := ctx.Err(); err != nil {
		return target, err
	}
	if err := utils.WriteFileAtomic(target, body, 0o644); err != nil {
		return target, err
	}
	return target, nil
}
