package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/recipebox/internal/paths"
	"github.com/mesh-intelligence/recipebox/internal/sqlite"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	BackendURL         string               `yaml:"backend_url,omitempty"`
	DataDir            string               `yaml:"data_dir,omitempty"`
	LogLevel           string               `yaml:"log_level,omitempty"`
	LogFile            string               `yaml:"log_file,omitempty"`
	HTTPTimeout        string               `yaml:"http_timeout,omitempty"`
	SkipWords          []string             `yaml:"skip_words"`
	Transforms         types.TransformTable `yaml:"transforms"`
	DefaultSuggestions []string             `yaml:"default_suggestions"`
}

func newInitCmd() *cobra.Command {
	var backendURL string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize recipebox configuration and storage",
		Long: "Create the configuration and data directories, write config.yaml and\n" +
			"initialize the local database. --backend-url sets the backend endpoint.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, backendURL)
		},
	}
	cmd.Flags().StringVar(&backendURL, "backend-url", "", "recipe backend endpoint")
	return cmd
}

func runInit(cmd *cobra.Command, backendURL string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	configPath := paths.ConfigFile(configDir)
	if err := writeConfig(configPath, backendURL, flags.dataDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	st, err := decodeSettings(v, flags.dataDir)
	if err != nil {
		return err
	}

	store := sqlite.NewBackend()
	if err := store.Attach(st.Config); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if err := store.Detach(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	w := stdout(cmd)
	fmt.Fprintf(w, "config: %s\n", configPath)
	fmt.Fprintf(w, "data:   %s\n", st.Config.DataDir)
	if err := st.Config.Validate(); err != nil {
		fmt.Fprintf(w, "warning: %v; set backend_url in %s or run init --backend-url\n", err, configPath)
		return nil
	}
	fmt.Fprintln(w, "recipebox initialized successfully")
	return nil
}

// writeConfig creates config.yaml with the default values when it is
// missing. When it exists it is rewritten only if backendURL or dataDir
// change a value; other keys are kept.
func writeConfig(path, backendURL, dataDir string) error {
	var cfg configFile
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if (backendURL == "" || backendURL == cfg.BackendURL) && (dataDir == "" || dataDir == cfg.DataDir) {
			return nil
		}
	case os.IsNotExist(err):
		cfg = defaultConfigFile()
	default:
		return err
	}

	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}

// defaultConfigFile mirrors defaultConfigYAML.
func defaultConfigFile() configFile {
	var cfg configFile
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic(err)
	}
	return cfg
}
