// Config loading for the recipebox CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/recipebox/internal/logging"
	"github.com/mesh-intelligence/recipebox/internal/paths"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyBackendURL         = "backend_url"
	cfgKeyDataDir            = "data_dir"
	cfgKeyLogLevel           = "log_level"
	cfgKeyLogFile            = "log_file"
	cfgKeyHTTPTimeout        = "http_timeout"
	cfgKeySkipWords          = "skip_words"
	cfgKeyTransforms         = "transforms"
	cfgKeyDefaultSuggestions = "default_suggestions"

	envPrefix = "RECIPEBOX"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# recipebox configuration

# Recipe backend endpoint (required)
# backend_url: https://example.com/exec

# Database directory (optional; overridable by --data-dir flag)
# data_dir:

log_level: warn
# log_file:
http_timeout: 15s

# Ingredient lines containing one of these words are left off the shopping list
skip_words:
  - salt
  - pepper
  - water

# Replacements applied in order to each shopping line
transforms: []
#  - key: tbsp
#    replacement: tablespoon

# Shown in the recall list until the first item is stored
default_suggestions:
  - apples
  - carrots
  - berries
`

// settings is the decoded configuration plus the CLI-only keys.
type settings struct {
	Config   types.Config
	LogLevel string
	LogFile  string
}

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error. Keys may be overridden by
// RECIPEBOX_* environment variables.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetDefault(cfgKeyHTTPTimeout, types.DefaultHTTPTimeout)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{cfgKeyBackendURL, cfgKeyLogLevel, cfgKeyLogFile, cfgKeyHTTPTimeout} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// decodeSettings maps viper values onto settings and resolves the data
// directory against the flag and environment.
func decodeSettings(v *viper.Viper, dataDirFlag string) (*settings, error) {
	var transforms types.TransformTable
	if err := v.UnmarshalKey(cfgKeyTransforms, &transforms); err != nil {
		return nil, fmt.Errorf("decode %s: %w", cfgKeyTransforms, err)
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	timeout := v.GetDuration(cfgKeyHTTPTimeout)
	if timeout <= 0 {
		timeout = types.DefaultHTTPTimeout
	}

	s := &settings{
		Config: types.Config{
			BackendURL:         v.GetString(cfgKeyBackendURL),
			DataDir:            dataDir,
			HTTPTimeout:        timeout,
			SkipWords:          v.GetStringSlice(cfgKeySkipWords),
			Transforms:         transforms,
			DefaultSuggestions: v.GetStringSlice(cfgKeyDefaultSuggestions),
		},
		LogLevel: v.GetString(cfgKeyLogLevel),
		LogFile:  v.GetString(cfgKeyLogFile),
	}
	if s.LogFile != "" && !filepath.IsAbs(s.LogFile) {
		s.LogFile = filepath.Join(dataDir, s.LogFile)
	}
	return s, nil
}

// httpTimeout reports the timeout applied to page fetches for import.
func (s *settings) httpTimeout() time.Duration {
	return s.Config.Timeout()
}
