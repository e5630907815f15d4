package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"propgen.dev/pkg/propgen/internal/domain"
	m "propgen.dev/pkg/propgen/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "propgen"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	inputFlagName   = "input"
	outputFlagName  = "output"
	packageFlagName = "package"
	excludeFlagName = "exclude"
	formatFlagName  = "format"
	logFileFlagName = "log-file"
	verboseFlagName = "verbose"

	inputConfigKey   = "paths.input"
	outputConfigKey  = "paths.output"
	excludeConfigKey = "paths.exclude"

	packageConfigKey    = "generate.package"
	basePackageKey      = "generate.base_package"
	frameworkPackageKey = "generate.framework_package"
	authorKey           = "generate.author"

	sourceExtensionKey = "source.extension"
	targetExtensionKey = "target.extension"

	accessorPrefixesKey   = "extract.accessor_prefixes"
	reservedSignaturesKey = "extract.reserved"
	coercionTypesKey      = "extract.coercion_types"

	listFormatKey     = "list.format"
	defaultListFormat = "table"

	envPrefix = "PROPGEN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".propgen.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func setDefaults(v *viper.Viper) {
	extraction := domain.DefaultExtractorConfig()
	tmpl := domain.DefaultTemplateConfig()

	v.SetDefault(configVersionKey, currentConfigVersion)

	v.SetDefault(inputConfigKey, "")
	v.SetDefault(outputConfigKey, "")
	v.SetDefault(excludeConfigKey, []string{})

	v.SetDefault(packageConfigKey, "")
	v.SetDefault(basePackageKey, tmpl.BasePackage)
	v.SetDefault(frameworkPackageKey, tmpl.FrameworkPackage)
	v.SetDefault(authorKey, tmpl.Author)

	v.SetDefault(sourceExtensionKey, domain.DefaultSourceExtension)
	v.SetDefault(targetExtensionKey, domain.DefaultTargetExtension)

	v.SetDefault(accessorPrefixesKey, extraction.AccessorPrefixes)
	v.SetDefault(reservedSignaturesKey, extraction.ReservedSignatures)
	v.SetDefault(coercionTypesKey, coercionNames(extraction.CoercionTypes))

	v.SetDefault(listFormatKey, defaultListFormat)

	// Logging defaults (used by config/env and as fallbacks for flags).
	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, defaultLogVerbose)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)
}

func coercionNames(types []m.CoercionType) []string {
	names := make([]string, 0, len(types))
	for _, coercion := range types {
		names = append(names, string(coercion))
	}

	return names
}

func parseCoercionTypes(names []string) []m.CoercionType {
	types := make([]m.CoercionType, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		types = append(types, m.CoercionType(name))
	}

	return types
}

// extractorConfigFromViper reads the extraction token sets.
func extractorConfigFromViper() domain.ExtractorConfig {
	return domain.ExtractorConfig{
		AccessorPrefixes:   viper.GetStringSlice(accessorPrefixesKey),
		ReservedSignatures: viper.GetStringSlice(reservedSignaturesKey),
		CoercionTypes:      parseCoercionTypes(viper.GetStringSlice(coercionTypesKey)),
	}
}

func sourceArgsFromViper() domain.SourceArgs {
	return domain.SourceArgs{
		Input:           m.Path(viper.GetString(inputConfigKey)),
		Exclude:         viper.GetStringSlice(excludeConfigKey),
		SourceExtension: viper.GetString(sourceExtensionKey),
		Extraction:      extractorConfigFromViper(),
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
