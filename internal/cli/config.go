package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/reindex/internal/paths"
	"github.com/mesh-intelligence/reindex/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyDSN      = "dsn"
	cfgKeyListen   = "listen"
	cfgKeyLogLevel = "log_level"

	defaultListen   = ":8080"
	defaultLogLevel = "info"
)

// settings are the values read from config.yaml and the environment.
type settings struct {
	Backend  string
	DataDir  string
	DSN      string
	Listen   string
	LogLevel string
}

// configFile is the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	DSN      string `yaml:"dsn,omitempty"`
	Listen   string `yaml:"listen,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// loadSettings reads config.yaml from configDir. A missing file leaves the
// defaults in place. REINDEX_BACKEND, REINDEX_DSN, REINDEX_LISTEN and
// REINDEX_LOG_LEVEL override the file.
func loadSettings(configDir string) (settings, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyListen, defaultListen)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	for _, key := range []string{cfgKeyBackend, cfgKeyDSN, cfgKeyListen, cfgKeyLogLevel} {
		if err := v.BindEnv(key, "REINDEX_"+strings.ToUpper(key)); err != nil {
			return settings{}, fmt.Errorf("bind env: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	return settings{
		Backend:  v.GetString(cfgKeyBackend),
		DataDir:  v.GetString(cfgKeyDataDir),
		DSN:      v.GetString(cfgKeyDSN),
		Listen:   v.GetString(cfgKeyListen),
		LogLevel: v.GetString(cfgKeyLogLevel),
	}, nil
}

// writeConfigIfMissing creates config.yaml with cfg unless it exists.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// newLogger builds the logger every command reports through.
func newLogger(cmd *cobra.Command, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, userError("log_level: %v", err)
	}
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(lvl)
	return log, nil
}

// load resolves the configuration directory and reads settings before any
// subcommand runs.
func (a *app) load(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return failed("resolve config dir", err)
	}
	a.configDir = configDir

	s, err := loadSettings(configDir)
	if err != nil {
		return failed("load config", err)
	}
	a.settings = s

	log, err := newLogger(cmd, s.LogLevel)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

// storeConfig builds the backend configuration from flags and settings.
func (a *app) storeConfig() (types.Config, error) {
	cfg := types.Config{Backend: a.settings.Backend, DSN: a.settings.DSN}
	if cfg.Backend == types.BackendSQLite {
		dataDir, err := paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
		if err != nil {
			return types.Config{}, err
		}
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

func (a *app) configPath() string {
	return filepath.Join(a.configDir, configFileName+"."+configFileType)
}
