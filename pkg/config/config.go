/*
Package config manages TOML config for spellserve services: default
dictionary paths, server limits and CLI defaults.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Paths  PathsConfig  `toml:"paths"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// PathsConfig names the default dictionary files.
type PathsConfig struct {
	Aff   string `toml:"aff"`
	Dic   string `toml:"dic"`
	Cache string `toml:"cache"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxWordLen   int  `toml:"max_word_len"`
	ReportTiming bool `toml:"report_timing"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	SuggestLimit int  `toml:"suggest_limit"`
	ShowStems    bool `toml:"show_stems"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxWordLen:   96,
			ReportTiming: true,
		},
		CLI: CliConfig{
			SuggestLimit: 10,
			ShowStems:    false,
		},
	}
}

// DictPaths is a resolved set of dictionary files for one engine load.
type DictPaths struct {
	Aff   string
	Dic   string
	Cache string
}

// UseCache reports whether the engine should load the compiled cache
// instead of parsing the word list.
func (p DictPaths) UseCache() bool {
	return p.Cache != "" && p.Dic == ""
}

// ResolveDictPaths merges command-line paths over the configured defaults
// and validates the result: the affix file must exist, and either a word
// list or a compiled cache must be given and exist. Unconventional file
// extensions are only noted in the debug log, since dictionary names vary.
func (c *Config) ResolveDictPaths(affFlag, dicFlag, cacheFlag string) (DictPaths, error) {
	p := DictPaths{Aff: affFlag, Dic: dicFlag, Cache: cacheFlag}
	if p.Aff == "" {
		p.Aff = c.Paths.Aff
	}
	if p.Dic == "" {
		p.Dic = c.Paths.Dic
	}
	if p.Cache == "" {
		p.Cache = c.Paths.Cache
	}

	if p.Aff == "" {
		return p, fmt.Errorf("no affix file given (use --aff or set paths.aff in config)")
	}
	if _, err := os.Stat(p.Aff); err != nil {
		return p, fmt.Errorf("affix file %s: %w", p.Aff, err)
	}
	warnExt(p.Aff, ".aff")

	if p.Dic == "" && p.Cache == "" {
		return p, fmt.Errorf("no word list given (use --dic, --cache or set paths in config)")
	}
	if p.Dic != "" {
		if _, err := os.Stat(p.Dic); err != nil {
			return p, fmt.Errorf("word list %s: %w", p.Dic, err)
		}
		warnExt(p.Dic, ".dic")
	} else if _, err := os.Stat(p.Cache); err != nil {
		return p, fmt.Errorf("compiled cache %s: %w", p.Cache, err)
	}
	return p, nil
}

func warnExt(path, want string) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != want {
		log.Debugf("Unusual extension %q for %s (expected %s)", ext, path, want)
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/spellserve
// 2. Current executable dir
// 3. builtin defaults
func GetConfigDir() (string, error) {
	if homeDir, err := os.UserHomeDir(); err == nil {
		primary := filepath.Join(homeDir, ".config", "spellserve")
		if dirWritable(primary) {
			return primary, nil
		}
	} else {
		log.Errorf("Failed to get home directory: %v", err)
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// dirWritable creates the directory if needed and probes write access.
func dirWritable(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return false
	}
	probe := filepath.Join(dir, ".spellserve-probe")
	f, err := os.Create(probe)
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dir, err)
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: ~/.config/spellserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(configPath); err != nil {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, salvaging the recognizable sections
// of a damaged file before giving up.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return salvageConfig(configPath)
	}
	return config, nil
}

// salvageConfig re-reads a damaged file as loose TOML and keeps whatever
// sections still decode, so one bad line does not reset every setting.
func salvageConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return config, nil
	}
	loose := make(map[string]any)
	if _, err := toml.Decode(string(data), &loose); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if paths, ok := loose["paths"].(map[string]any); ok {
		salvageString(paths, "aff", &config.Paths.Aff)
		salvageString(paths, "dic", &config.Paths.Dic)
		salvageString(paths, "cache", &config.Paths.Cache)
	}
	if server, ok := loose["server"].(map[string]any); ok {
		salvageInt(server, "max_word_len", &config.Server.MaxWordLen)
		salvageBool(server, "report_timing", &config.Server.ReportTiming)
	}
	if cli, ok := loose["cli"].(map[string]any); ok {
		salvageInt(cli, "suggest_limit", &config.CLI.SuggestLimit)
		salvageBool(cli, "show_stems", &config.CLI.ShowStems)
	}
	return config, nil
}

func salvageString(section map[string]any, key string, dst *string) {
	if v, ok := section[key].(string); ok {
		*dst = v
	}
}

func salvageInt(section map[string]any, key string, dst *int) {
	if v, ok := section[key].(int64); ok {
		*dst = int(v)
	}
}

func salvageBool(section map[string]any, key string, dst *bool) {
	if v, ok := section[key].(bool); ok {
		*dst = v
	}
}

// SaveConfig saves into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	f, err := os.Create(configPath)
	if err != nil {
		log.Errorf("Failed to create config file: %v", err)
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}

// GetActiveConfigPath returns the absolute path of loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		return abs
	}
	return configPath
}
