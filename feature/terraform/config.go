package terraform

// Config holds the terraform integration settings.
type Config struct {
	// Binary is the terraform executable name or path.
	Binary string `mapstructure:"binary" default:"terraform"`
	// Export refreshes the state snapshot with `terraform show -json` before generating.
	Export bool `mapstructure:"export" default:"true"`
	// SnapshotFile is the state snapshot path, relative to the environment directory.
	SnapshotFile string `mapstructure:"snapshot_file" default:"terraform.show.json"`
}
