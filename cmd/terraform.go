package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"okta-import/feature/terraform"

	"github.com/spf13/cobra"
)

// wrapperGuard is owned by this process invocation and shared by every wrapper it runs.
var wrapperGuard = &terraform.Guard{}

// terraformCmd runs terraform with the subdirectory configuration consolidated.
var terraformCmd = &cobra.Command{
	Use:   "terraform [terraform args...]",
	Short: "Run terraform in the current environment directory",
	Long: `Consolidates every .tf file of the subdirectories (users/, groups/, applications/)
into _consolidated.tf, runs terraform with the given arguments and removes the
consolidated file afterwards. Must be run from a directory containing a .tf file
with a terraform {} block.

Examples:
  cd preview
  okta-import terraform init
  okta-import terraform plan -var-file=terraform.tfvars.json`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := bootstrap()
		if err != nil {
			return err
		}
		defer l.Sync()

		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		code, err := terraform.NewWrapper(wd, cfg.Terraform.Binary, wrapperGuard, l).Run(ctx, args)
		if err != nil {
			return err
		}
		if code != 0 {
			_ = l.Sync()
			os.Exit(code)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(terraformCmd)
}
