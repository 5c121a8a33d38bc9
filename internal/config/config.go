// Package config loads the application configuration from command line
// flags, environment variables and an optional YAML config file, in that
// precedence order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeRun = "run"
	ModeMCP = "mcp"

	// Default values
	DefaultLogLevel  = "info"
	DefaultOutputDir = "exports"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// knownFormats enumerates the exporters that can be enabled.
var knownFormats = map[string]bool{
	"json":     true,
	"csv":      true,
	"xlsx":     true,
	"markdown": true,
}

// Config holds all configuration for the highlight extraction pipeline.
type Config struct {
	// Mode selects one-shot processing ("run") or MCP stdio serving ("mcp").
	Mode string

	// Input selection: a single PDF file, or a directory of PDFs.
	InputFile string
	InputDir  string

	// BibtexPath locates the bibliography used for identity resolution.
	BibtexPath string

	// Output configuration
	OutputDir string
	Formats   []string

	// Application configuration
	Version  string
	LogLevel string
	Notify   bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:      ModeRun,
		OutputDir: DefaultOutputDir,
		Formats:   []string{"json", "csv", "markdown"},
		Version:   "1.0.0",
		LogLevel:  DefaultLogLevel,
		Notify:    true,
	}
}

// LoadFromFlags parses command line flags, environment variables and the
// optional config file, and returns a validated configuration. The first
// positional argument, when present, is the input PDF.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	if err := readConfigFile(); err != nil {
		return nil, err
	}
	populateConfigFromViper(cfg)

	if args := pflag.Args(); len(args) > 0 {
		cfg.InputFile = args[0]
	}

	// Expand paths so later chdirs cannot reroute outputs.
	expandPath(&cfg.BibtexPath)
	expandPath(&cfg.OutputDir)
	expandPath(&cfg.InputFile)
	expandPath(&cfg.InputDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and
// defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDFMARKS")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.InputDir)
	viper.SetDefault("bibtex_path", cfg.BibtexPath)
	viper.SetDefault("output_dir", cfg.OutputDir)
	viper.SetDefault("formats", cfg.Formats)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("notify", cfg.Notify)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Mode: 'run' for one-shot processing, 'mcp' for MCP standard I/O serving")
	pflag.String("dir", cfg.InputDir, "Directory of PDF files to process (non-recursive)")
	pflag.String("bibtex", cfg.BibtexPath, "Path to the BibTeX bibliography file")
	pflag.String("output", cfg.OutputDir, "Base directory for export outputs")
	pflag.StringSlice("formats", cfg.Formats, "Enabled export formats (json, csv, xlsx, markdown)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Bool("notify", cfg.Notify, "Send a desktop notification with the run summary")
	pflag.String("config", "", "Path to a YAML config file (default: ./config.yaml when present)")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("bibtex_path", pflag.Lookup("bibtex"))
	_ = viper.BindPFlag("output_dir", pflag.Lookup("output"))
	_ = viper.BindPFlag("formats", pflag.Lookup("formats"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("notify", pflag.Lookup("notify"))
}

// readConfigFile loads the optional YAML config file. A missing default
// config file is fine; an explicitly requested one must exist.
func readConfigFile() error {
	if explicit := pflag.Lookup("config").Value.String(); explicit != "" {
		viper.SetConfigFile(explicit)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("cannot read config file %s: %w", explicit, err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("cannot read config file: %w", err)
	}
	return nil
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdfmarks - extract PDF highlights and enrich them from a BibTeX bibliography\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --bibtex=library.bib paper.pdf            # process one file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --bibtex=library.bib --dir=/path/to/pdfs  # process a directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=mcp --bibtex=library.bib           # serve over MCP stdio\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDFMARKS_MODE         Mode\n")
		fmt.Fprintf(os.Stderr, "  PDFMARKS_DIR          Input directory\n")
		fmt.Fprintf(os.Stderr, "  PDFMARKS_BIBTEX_PATH  Bibliography path\n")
		fmt.Fprintf(os.Stderr, "  PDFMARKS_OUTPUT_DIR   Output directory\n")
		fmt.Fprintf(os.Stderr, "  PDFMARKS_FORMATS      Enabled export formats\n")
		fmt.Fprintf(os.Stderr, "  PDFMARKS_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  PDFMARKS_NOTIFY       Desktop notification toggle\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InputDir = viper.GetString("dir")
	cfg.BibtexPath = viper.GetString("bibtex_path")
	cfg.OutputDir = viper.GetString("output_dir")
	cfg.Formats = viper.GetStringSlice("formats")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.Notify = viper.GetBool("notify")
}

// expandPath rewrites a non-empty path to its absolute form.
func expandPath(path *string) {
	if *path == "" {
		return
	}
	if abs, err := filepath.Abs(*path); err == nil {
		*path = abs
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeRun && c.Mode != ModeMCP {
		return errors.New("mode must be either 'run' or 'mcp'")
	}

	if c.BibtexPath == "" {
		return errors.New("bibliography path cannot be empty")
	}

	if c.Mode == ModeRun {
		if c.InputFile == "" && c.InputDir == "" {
			return errors.New("either an input file or --dir is required in run mode")
		}
		if c.InputFile != "" && c.InputDir != "" {
			return errors.New("an input file and --dir are mutually exclusive")
		}
		if c.OutputDir == "" {
			return errors.New("output directory cannot be empty")
		}
		if len(c.Formats) == 0 {
			return errors.New("at least one export format must be enabled")
		}
	}

	for _, format := range c.Formats {
		if !knownFormats[format] {
			return fmt.Errorf("unknown export format: %s (must be one of: json, csv, xlsx, markdown)", format)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsMCPMode returns true when the pipeline is served over MCP stdio.
func (c *Config) IsMCPMode() bool {
	return c.Mode == ModeMCP
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InputFile: %s, InputDir: %s, BibtexPath: %s, OutputDir: %s, Formats: %v, LogLevel: %s, Notify: %t}",
		c.Mode, c.InputFile, c.InputDir, c.BibtexPath, c.OutputDir, c.Formats, c.LogLevel, c.Notify)
}
