package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"okta-import/core/utils"

	"github.com/hashicorp/terraform-exec/tfexec"
	tfjson "github.com/hashicorp/terraform-json"
	"go.uber.org/zap"
)

// Shower reads the current state of a working directory.
type Shower interface {
	Show(ctx context.Context, opts ...tfexec.ShowOption) (*tfjson.State, error)
}

// Exporter refreshes the snapshot file from the live Terraform state.
type Exporter struct {
	// Binary is the terraform executable name or path.
	Binary string
	// Open constructs a Shower for a working directory. Defaults to tfexec.
	Open   func(dir, execPath string) (Shower, error)
	logger *zap.Logger
}

// NewExporter creates an exporter that runs the given terraform binary.
func NewExporter(binary string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		Binary: binary,
		Open: func(dir, execPath string) (Shower, error) {
			return tfexec.NewTerraform(dir, execPath)
		},
		logger: logger,
	}
}

// Export runs `terraform show -json` in dir and atomically writes the document to dest.
func (e *Exporter) Export(ctx context.Context, dir, dest string) error {
	execPath := e.Binary
	if e.Binary != "" {
		if p, err := exec.LookPath(e.Binary); err == nil {
			execPath = p
		}
	}

	tf, err := e.Open(dir, execPath)
	if err != nil {
		return fmt.Errorf("failed to prepare terraform in %s: %w", dir, err)
	}

	st, err := tf.Show(ctx)
	if err != nil {
		return fmt.Errorf("failed to export terraform state: %w", err)
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode terraform state: %w", err)
	}

	if err := utils.WriteFileAtomic(dest, data, 0o600); err != nil {
		return err
	}

	e.logger.Info("Terraform state exported", zap.String("path", dest))
	return nil
}
