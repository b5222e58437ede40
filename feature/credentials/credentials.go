package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"okta-import/core/utils"
	"okta-import/feature/okta"

	"go.uber.org/zap"
)

// DefaultFileName is the encrypted variables file of an environment.
const DefaultFileName = "terraform.plan.enc.tfvars.json"

// Variable names read from the file.
const (
	VarOrgName      = "okta_org_name"
	VarBaseURL      = "okta_base_url"
	VarClientID     = "okta_api_client_id"
	VarPrivateKeyID = "okta_api_private_key_id"
	VarPrivateKey   = "okta_api_private_key"
	VarScopes       = "okta_api_scopes"
	VarAPIToken     = "okta_api_token"
)

// Decrypter turns an encrypted file into plain JSON.
type Decrypter interface {
	Decrypt(ctx context.Context, path string) ([]byte, error)
}

// Sops decrypts files with the sops CLI.
type Sops struct {
	// Binary is the sops executable. Empty means "sops" from PATH.
	Binary string
}

// Decrypt runs `sops -d --output-type json <path>`.
func (s Sops) Decrypt(ctx context.Context, path string) ([]byte, error) {
	bin := s.Binary
	if bin == "" {
		bin = "sops"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-d", "--output-type", "json", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sops failed to decrypt %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Load decrypts the variables file of dir. A missing file returns os.ErrNotExist.
func Load(ctx context.Context, dec Decrypter, dir, fileName string) (map[string]any, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}
	path := filepath.Join(dir, fileName)

	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	data, err := dec.Decrypt(ctx, path)
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted %s: %w", path, err)
	}
	return values, nil
}

// Apply overlays the file values on cfg. Empty values keep the cfg value.
func Apply(values map[string]any, cfg okta.Config) okta.Config {
	set := func(dst *string, key string) {
		if v := utils.ToString(values[key]); v != "" {
			*dst = v
		}
	}

	set(&cfg.OrgName, VarOrgName)
	set(&cfg.BaseURL, VarBaseURL)
	set(&cfg.ClientID, VarClientID)
	set(&cfg.PrivateKeyID, VarPrivateKeyID)
	set(&cfg.PrivateKey, VarPrivateKey)
	set(&cfg.APIToken, VarAPIToken)

	if scopes := utils.ToStringSlice(values[VarScopes]); len(scopes) > 0 {
		cfg.Scopes = scopes
	}
	return cfg
}

// Resolve builds the Okta configuration of dir and validates it. A missing
// variables file leaves cfg untouched.
func Resolve(ctx context.Context, dec Decrypter, dir, fileName string, cfg okta.Config, logger *zap.Logger) (okta.Config, error) {
	values, err := Load(ctx, dec, dir, fileName)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("No encrypted variables file, using configured credentials", zap.String("directory", dir))
	case err != nil:
		return cfg, err
	default:
		cfg = Apply(values, cfg)
		logger.Debug("Loaded credentials from encrypted variables file", zap.String("directory", dir))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Discover lists the subdirectories of root containing the variables file.
func Discover(root, fileName string) ([]string, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, e.Name(), fileName)); err == nil {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
