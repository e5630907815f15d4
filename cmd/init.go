package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "propgen.dev/pkg/propgen/internal/model"
)

// errConfigExists is returned when init would replace an existing config file.
var errConfigExists = errors.New("config file already exists")

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default propgen.yaml configuration file",
		Long: `Create a propgen.yaml in the current working directory populated with the
current defaults (template header, extraction token sets, log rotation) so it
can be edited manually. An existing file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			exists, err := fsAdapter.Exists(m.Path(targetPath))
			if err != nil {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			if exists {
				return fmt.Errorf("%w: %s", errConfigExists, targetPath)
			}

			if err := viper.SafeWriteConfigAs(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
