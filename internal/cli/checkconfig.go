package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/atomiclab/atomic/internal/config"
)

// addCheckConfigCommand registers `atomic check-config`, which loads the
// layered configuration, validates it, and prints the effective values.
func addCheckConfigCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check-config",
		Short: "Validate and print the effective configuration",
		Long: `Load configuration from defaults, the global config file
(~/.atomic/config.yaml), the project config file (.atomic/config.yaml),
and ATOMIC_* environment variables, validate the merged result, and
print the effective values as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()
			ctx := logger.WithContext(cmd.Context())

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			cmd.Print(string(out))

			if path, err := LogFilePath(); err == nil {
				cmd.Printf("\n# log file: %s\n", path)
			}
			return nil
		},
	}

	root.AddCommand(cmd)
}
