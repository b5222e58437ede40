package imports

// Config holds the import generation settings.
type Config struct {
	// SortBy orders records before reconciling (id, name, internal_name, subtype or a kind key).
	SortBy string `mapstructure:"sort_by" default:""`
	// CredentialsFile is the SOPS encrypted variables file of each environment.
	CredentialsFile string `mapstructure:"credentials_file" default:"terraform.plan.enc.tfvars.json"`
	// SopsBinary is the sops executable.
	SopsBinary string `mapstructure:"sops_binary" default:"sops"`
	// History records every kind outcome in the database when it is enabled.
	History bool `mapstructure:"history" default:"true"`
}
