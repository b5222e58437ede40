package terraform_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"okta-import/feature/terraform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func environment(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.tf"), "terraform {\n  required_providers {}\n}\n")
	writeFile(t, filepath.Join(dir, "groups", "import.tf"), "import {}\n")
	writeFile(t, filepath.Join(dir, "users", "import.tf"), "import {}\n")
	writeFile(t, filepath.Join(dir, ".terraform", "modules", "x", "main.tf"), "ignored\n")
	return dir
}

func fakeTerraform(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script binaries need a unix shell")
	}
	bin := t.TempDir()
	path := filepath.Join(bin, "terraform")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	t.Setenv("PATH", bin)
	return path
}

func TestValidateDir(t *testing.T) {
	assert.NoError(t, terraform.ValidateDir(environment(t)))

	empty := t.TempDir()
	writeFile(t, filepath.Join(empty, "variables.tf"), "variable \"x\" {}\n")
	assert.ErrorIs(t, terraform.ValidateDir(empty), terraform.ErrNoConfiguration)
}

func TestConsolidate(t *testing.T) {
	dir := environment(t)

	count, err := terraform.Consolidate(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(filepath.Join(dir, terraform.ConsolidatedFile))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "# Source: groups/import.tf\n")
	assert.Contains(t, out, "# Source: users/import.tf\n")
	assert.Less(t, strings.Index(out, "groups/import.tf"), strings.Index(out, "users/import.tf"))
	assert.NotContains(t, out, "ignored")
	assert.NotContains(t, out, "required_providers")

	require.NoError(t, terraform.Cleanup(dir))
	assert.NoFileExists(t, filepath.Join(dir, terraform.ConsolidatedFile))
	assert.NoError(t, terraform.Cleanup(dir))
}

func TestGuard(t *testing.T) {
	var g terraform.Guard

	release, err := g.Enter()
	require.NoError(t, err)

	_, err = g.Enter()
	assert.ErrorIs(t, err, terraform.ErrReentrant)

	release()
	release, err = g.Enter()
	require.NoError(t, err)
	release()
}

func TestWrapper_Run(t *testing.T) {
	fakeTerraform(t, `test -f _consolidated.tf || exit 9
[ "$1" = "plan" ] || exit 8
exit 3`)
	dir := environment(t)

	w := terraform.NewWrapper(dir, "terraform", nil, zap.NewNop())
	code, err := w.Run(context.Background(), []string{"plan", "-input=false"})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.NoFileExists(t, filepath.Join(dir, terraform.ConsolidatedFile))
}

func TestWrapper_RunSuccess(t *testing.T) {
	fakeTerraform(t, "exit 0")
	dir := environment(t)
	writeFile(t, filepath.Join(dir, terraform.ConsolidatedFile), "stale\n")

	code, err := terraform.NewWrapper(dir, "", nil, nil).Run(context.Background(), []string{"version"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.NoFileExists(t, filepath.Join(dir, terraform.ConsolidatedFile))
}

func TestWrapper_Reentrant(t *testing.T) {
	fakeTerraform(t, "exit 0")
	guard := &terraform.Guard{}
	release, err := guard.Enter()
	require.NoError(t, err)
	defer release()

	code, err := terraform.NewWrapper(environment(t), "terraform", guard, nil).Run(context.Background(), nil)
	assert.ErrorIs(t, err, terraform.ErrReentrant)
	assert.Equal(t, 1, code)
}

func TestWrapper_InvalidDirectory(t *testing.T) {
	fakeTerraform(t, "exit 0")
	dir := t.TempDir()

	_, err := terraform.NewWrapper(dir, "terraform", nil, nil).Run(context.Background(), nil)
	assert.ErrorIs(t, err, terraform.ErrNoConfiguration)
	assert.NoFileExists(t, filepath.Join(dir, terraform.ConsolidatedFile))
}

func TestFindBinary_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := terraform.FindBinary("terraform")
	assert.ErrorContains(t, err, "not found")
}
