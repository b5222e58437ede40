package terraform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// ExitInterrupted is the exit code reported when the run is cancelled.
const ExitInterrupted = 130

// Wrapper runs terraform in an environment directory.
type Wrapper struct {
	// Dir is the environment directory.
	Dir string
	// Binary is the terraform executable name or path.
	Binary string
	// Guard refuses nested runs.
	Guard *Guard
	// Logger receives progress messages.
	Logger *zap.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewWrapper creates a wrapper wired to the process standard streams.
func NewWrapper(dir, binary string, guard *Guard, logger *zap.Logger) *Wrapper {
	if binary == "" {
		binary = "terraform"
	}
	if guard == nil {
		guard = &Guard{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wrapper{
		Dir:    dir,
		Binary: binary,
		Guard:  guard,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run consolidates the configuration, runs terraform with args and returns
// its exit code. The consolidated file is removed on every path.
func (w *Wrapper) Run(ctx context.Context, args []string) (int, error) {
	release, err := w.Guard.Enter()
	if err != nil {
		return 1, err
	}
	defer release()

	if err := ValidateDir(w.Dir); err != nil {
		return 1, err
	}

	bin, err := FindBinary(w.Binary)
	if err != nil {
		return 1, err
	}

	if err := Cleanup(w.Dir); err != nil {
		return 1, fmt.Errorf("failed to remove stale %s: %w", ConsolidatedFile, err)
	}
	defer func() {
		if err := Cleanup(w.Dir); err != nil {
			w.Logger.Warn("Failed to remove consolidated file", zap.Error(err))
		}
	}()

	count, err := Consolidate(w.Dir)
	if err != nil {
		return 1, fmt.Errorf("failed to consolidate configuration: %w", err)
	}
	w.Logger.Info("Consolidated configuration",
		zap.String("file", ConsolidatedFile),
		zap.Int("files", count),
	)

	w.Logger.Info("Running terraform", zap.String("binary", bin), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = w.Dir
	cmd.Stdin = w.Stdin
	cmd.Stdout = w.Stdout
	cmd.Stderr = w.Stderr

	err = cmd.Run()
	if ctx.Err() != nil {
		return ExitInterrupted, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 1, fmt.Errorf("failed to run terraform: %w", err)
	}
	return 0, nil
}

// FindBinary resolves name on PATH, skipping the running executable so the
// wrapper never invokes itself.
func FindBinary(name string) (string, error) {
	self, _ := os.Executable()
	self, _ = filepath.EvalSymlinks(self)

	if filepath.IsAbs(name) || filepath.Base(name) != name {
		if isSelf(name, self) {
			return "", fmt.Errorf("terraform binary %s is this executable", name)
		}
		return name, nil
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
			continue
		}
		if isSelf(candidate, self) {
			continue
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%s executable not found in PATH", name)
}

func isSelf(path, self string) bool {
	if self == "" {
		return false
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	return resolved == self
}
