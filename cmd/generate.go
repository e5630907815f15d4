package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"propgen.dev/pkg/propgen/internal/domain"
	m "propgen.dev/pkg/propgen/internal/model"
)

const generateLongDescription = `Generate one Kotlin property class per Java class that exposes at least
one accessor. The output tree mirrors the input tree with .java swapped
for .kt; files that already exist are skipped.

Example:
  propgen generate -i ./bukkit/src/main/java/org/bukkit -o ./generated -p org.bukkit`

var outputDirFlag string
var packageNameFlag string

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate Kotlin property classes from Java accessors",
		Long:    generateLongDescription,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Generate(cmd.Context(), generateArgsFromViper())
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputDirFlag, outputFlagName, "o", viper.GetString(outputConfigKey), "output directory to save Kotlin files")
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputConfigKey)

	cmd.Flags().StringVarP(&packageNameFlag, packageFlagName, "p", viper.GetString(packageConfigKey), "package of the Java classes, imported by generated files")
	bindFlagToConfig(cmd.Flags().Lookup(packageFlagName), packageConfigKey)
}

func generateArgsFromViper() domain.GenerateArgs {
	return domain.GenerateArgs{
		SourceArgs:      sourceArgsFromViper(),
		Output:          m.Path(viper.GetString(outputConfigKey)),
		Package:         viper.GetString(packageConfigKey),
		TargetExtension: viper.GetString(targetExtensionKey),
		Template: domain.TemplateConfig{
			BasePackage:      viper.GetString(basePackageKey),
			FrameworkPackage: viper.GetString(frameworkPackageKey),
			Author:           viper.GetString(authorKey),
		},
	}
}
