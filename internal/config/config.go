// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bookbinderapp/bookbinder/internal/validation"
)

// cacheFileName is the default duration cache location inside the library
// root. The leading dot keeps it out of the audio file walk.
const cacheFileName = ".duration-cache.json"

// Prober implementations selectable through ProbeConfig.Kind.
const (
	ProbeKindFFmpeg = "ffmpeg"
	ProbeKindNative = "native"
)

// Config holds the application configuration.
type Config struct {
	Logger  LoggerConfig
	Library LibraryConfig
	Output  OutputConfig
	Probe   ProbeConfig
	Build   BuildConfig
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `json:"log_level" validate:"required,oneof=debug info warn error"`
	// Format selects the log encoding; empty means auto-detect by terminal.
	Format string `json:"log_format" validate:"omitempty,oneof=json pretty"`
}

// LibraryConfig holds the source library configuration.
type LibraryConfig struct {
	// Path is the root directory containing one subdirectory per book.
	Path string `json:"library_path" validate:"required,dir"`
	// Books names the book directories to build. Empty means every
	// subdirectory of Path, in sorted order.
	Books []string `json:"books" validate:"omitempty,dive,required"`
}

// OutputConfig holds rendered document output configuration.
type OutputConfig struct {
	// Path is the directory receiving <book>.txt, <book>.html and
	// index.html (default: the library root).
	Path string `json:"output_path" validate:"required"`
}

// ProbeConfig holds duration probing configuration.
type ProbeConfig struct {
	// Binary is the external media tool invoked per file (default: ffmpeg).
	Binary string `json:"probe_bin" validate:"required"`
	// Kind selects the prober implementation (default: ffmpeg).
	Kind string `json:"probe_kind" validate:"required,oneof=ffmpeg native"`
	// CachePath is the duration cache file (default: {library}/.duration-cache.json).
	CachePath string `json:"cache_path" validate:"required"`
}

// BuildConfig holds build-loop configuration.
type BuildConfig struct {
	// Watch keeps the process alive and rebuilds on library changes.
	Watch bool
	// SettleDelay is how long the watcher waits after the last filesystem
	// event before rebuilding (default: 2s).
	SettleDelay time.Duration
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	libraryPath := flag.String("library", "", "Root directory containing book directories")
	books := flag.String("books", "", "Comma-separated book directory names (default: all subdirectories)")
	outputPath := flag.String("output", "", "Directory for rendered output (default: library root)")
	cachePath := flag.String("cache", "", "Duration cache file (default: {library}/"+cacheFileName+")")
	probeBinary := flag.String("probe-bin", "", "Media tool used to probe durations (default: ffmpeg)")
	probeKind := flag.String("probe-kind", "", "Prober implementation: ffmpeg or native (default: ffmpeg)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format: json or pretty (default: auto-detect)")
	watch := flag.String("watch", "", "Watch the library and rebuild on changes (default: false)")
	watchDelay := flag.String("watch-delay", "", "Settle delay before a watch rebuild (default: 2s)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		Logger: LoggerConfig{
			Level:  getConfigValue(*logLevel, "LOG_LEVEL", "info"),
			Format: getConfigValue(*logFormat, "LOG_FORMAT", ""),
		},
		Library: LibraryConfig{
			Path:  getConfigValue(*libraryPath, "LIBRARY_PATH", ""),
			Books: splitBooks(getConfigValue(*books, "BOOKS", "")),
		},
		Output: OutputConfig{
			Path: getConfigValue(*outputPath, "OUTPUT_PATH", ""),
		},
		Probe: ProbeConfig{
			Binary:    getConfigValue(*probeBinary, "PROBE_BIN", "ffmpeg"),
			Kind:      getConfigValue(*probeKind, "PROBE_KIND", ProbeKindFFmpeg),
			CachePath: getConfigValue(*cachePath, "CACHE_PATH", ""),
		},
		Build: BuildConfig{
			Watch: getBoolConfigValue(*watch, "WATCH", false),
		},
	}

	// Parse the watch settle delay.
	settleStr := getConfigValue(*watchDelay, "WATCH_DELAY", "2s")
	settle, err := time.ParseDuration(settleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid watch delay %q: %w", settleStr, err)
	}
	cfg.Build.SettleDelay = settle

	// Expand and validate the library path.
	if err := cfg.expandLibraryPath(); err != nil {
		return nil, fmt.Errorf("invalid library path: %w", err)
	}

	// Expand the output path (defaults to the library root).
	if err := cfg.expandOutputPath(); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}

	// Expand the cache path (defaults to {library}/.duration-cache.json).
	if err := cfg.expandCachePath(); err != nil {
		return nil, fmt.Errorf("invalid cache path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	return validation.New().Validate(c)
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandLibraryPath expands ~ and makes the path absolute.
// An unset library means the current directory.
func (c *Config) expandLibraryPath() error {
	path := c.Library.Path
	if path == "" {
		path = "."
	}

	expanded, err := expandPath(path, "")
	if err != nil {
		return err
	}
	c.Library.Path = expanded
	return nil
}

// expandOutputPath expands ~ and makes the path absolute.
// Defaults to the library root if not specified.
func (c *Config) expandOutputPath() error {
	expanded, err := expandPath(c.Output.Path, c.Library.Path)
	if err != nil {
		return err
	}
	c.Output.Path = expanded
	return nil
}

// expandCachePath expands ~ and makes the path absolute.
// Defaults to {library}/.duration-cache.json if not specified.
func (c *Config) expandCachePath() error {
	defaultPath := filepath.Join(c.Library.Path, cacheFileName)

	expanded, err := expandPath(c.Probe.CachePath, defaultPath)
	if err != nil {
		return err
	}
	c.Probe.CachePath = expanded
	return nil
}

// splitBooks parses a comma-separated book list, dropping empty entries.
func splitBooks(value string) []string {
	if value == "" {
		return nil
	}

	var books []string
	for _, name := range strings.Split(value, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			books = append(books, name)
		}
	}
	return books
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
