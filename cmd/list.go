package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"propgen.dev/pkg/propgen/internal/controller"
	"propgen.dev/pkg/propgen/internal/domain"
)

var listFormatFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List detected classes and their properties without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := controller.ParseListFormat(viper.GetString(listFormatKey))
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				SourceArgs: sourceArgsFromViper(),
				Format:     format,
			})
		},
	}

	cmd.Flags().StringVarP(&listFormatFlag, formatFlagName, "f", viper.GetString(listFormatKey), "output format: table or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), listFormatKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
