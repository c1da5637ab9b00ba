package cli

import (
	stderrors "errors"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/generator"
	"github.com/toyz/beangen/internal/utils"
)

// Configuration sources
const (
	ConfigName = "beangen"
	ConfigType = "toml"
	EnvPrefix  = "BEANGEN"
)

// Configuration defaults
const (
	DefaultOutputDir     = "generated-sources"
	DefaultLineEnding    = "lf"
	DefaultServerAddr    = ":8080"
	DefaultFramework     = "gin"
	DefaultWatchDebounce = 200 * time.Millisecond
)

// Frameworks accepted by server.framework
var Frameworks = []string{"gin", "echo", "fiber"}

// Config contains the configuration for a beangen run
type Config struct {
	SourceDirs      []string     `mapstructure:"source_dirs"`
	OutputDir       string       `mapstructure:"output_dir"`
	Excludes        []string     `mapstructure:"exclude"`
	Workers         int          `mapstructure:"workers"`
	Indent          string       `mapstructure:"indent"`
	LineEnding      string       `mapstructure:"line_ending"`
	GeneratorName   string       `mapstructure:"generator_name"`
	GeneratedImport string       `mapstructure:"generated_import"`
	EntityImport    string       `mapstructure:"entity_import"`
	Server          ServerConfig `mapstructure:"server"`
	Watch           WatchConfig  `mapstructure:"watch"`

	DryRun  bool `mapstructure:"dry_run"`
	Verbose bool `mapstructure:"verbose"`
	Quiet   bool `mapstructure:"quiet"`
}

// ServerConfig configures the HTTP render service
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	Framework string `mapstructure:"framework"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// NewViper returns a viper instance with the beangen defaults and BEANGEN_* environment binding
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// SetDefaults registers a default for every configuration key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source_dirs", []string{"."})
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("exclude", []string{})
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("indent", generator.DefaultIndent)
	v.SetDefault("line_ending", DefaultLineEnding)
	v.SetDefault("generator_name", generator.DefaultGeneratorName)
	v.SetDefault("generated_import", generator.DefaultGeneratedImport)
	v.SetDefault("entity_import", generator.DefaultEntityImport)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.framework", DefaultFramework)
	v.SetDefault("watch.debounce", DefaultWatchDebounce)
	v.SetDefault("dry_run", false)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
}

// DefaultConfig returns the configuration used when no file, environment or flag is given
func DefaultConfig() Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// LoadConfig reads configFile, or beangen.toml from the working directory
// when configFile is empty, and decodes the merged settings. A missing
// beangen.toml is not an error; a missing explicit file is.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(ConfigType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return Config{}, errors.WrapConfigurationError(configPath(v, configFile), "read", err).
				WithSuggestion("Check that the file exists and is valid TOML")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.WrapConfigurationError(configPath(v, configFile), "decode", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configPath(v *viper.Viper, configFile string) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	if configFile != "" {
		return configFile
	}
	return ConfigName + "." + ConfigType
}

var (
	validateSourceDirs = utils.NewValidatorChain(
		utils.SliceNotEmpty[string]("source_dirs"),
		utils.ValidateEach("source_dirs", utils.NotEmpty("source_dirs")),
	)
	// the generator name is rendered inside a Java string literal
	validateGeneratorName = utils.NewValidatorChain(
		utils.NotEmpty("generator_name"),
		utils.MatchesRegex("generator_name", `^[^"\\\r\n]+$`),
	)
)

// Validate checks every setting and reports the first invalid one
func (c Config) Validate() error {
	checks := []error{
		validateSourceDirs.Validate(c.SourceDirs),
		utils.NotEmpty("output_dir")(c.OutputDir),
		utils.Positive("workers")(c.Workers),
		utils.NotEmpty("indent")(c.Indent),
		utils.IsOneOf("line_ending", "lf", "crlf")(strings.ToLower(c.LineEnding)),
		validateGeneratorName.Validate(c.GeneratorName),
		utils.IsValidJavaName("generated_import")(c.GeneratedImport),
		utils.IsValidJavaName("entity_import")(c.EntityImport),
		utils.IsOneOf("server.framework", Frameworks...)(c.Server.Framework),
		utils.NotEmpty("server.addr")(c.Server.Addr),
		utils.Custom("watch.debounce", "must be positive", func(d time.Duration) bool { return d > 0 })(c.Watch.Debounce),
		utils.ValidatePatterns(c.Excludes),
	}

	for _, err := range checks {
		if err != nil {
			return errors.WrapConfigurationError(ConfigName, "validate", err).
				WithSuggestion("Fix the value in beangen.toml, the BEANGEN_* environment or the command line flags")
		}
	}
	return nil
}

// EmitOptions returns the emitter settings described by the configuration
func (c Config) EmitOptions() generator.Options {
	lineEnding := "\n"
	if strings.EqualFold(c.LineEnding, "crlf") {
		lineEnding = "\r\n"
	}

	return generator.Options{
		Indent:          c.Indent,
		LineEnding:      lineEnding,
		GeneratorName:   c.GeneratorName,
		GeneratedImport: c.GeneratedImport,
		EntityImport:    c.EntityImport,
	}
}

// DiagnosticLevel maps the quiet and verbose switches to an output level
func (c Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}
