package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"snakegame/app"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagChainID  = "chain-id"
	flagNode     = "node"

	envPrefix = "SNAKED"
)

// Config is the resolved node and client configuration. Values come from
// flags, SNAKED_* environment variables and <home>/config/app.toml, in that
// order of precedence.
type Config struct {
	Home      string     `mapstructure:"home"`
	LogLevel  string     `mapstructure:"log_level"`
	ChainID   string     `mapstructure:"chain_id"`
	Node      string     `mapstructure:"node"`
	DBBackend string     `mapstructure:"db_backend"`
	API       APIConfig  `mapstructure:"api"`
	Keys      KeysConfig `mapstructure:"keys"`
}

type APIConfig struct {
	Address string `mapstructure:"address"`
}

type KeysConfig struct {
	Passphrase string `mapstructure:"passphrase"`
}

// DefaultNodeHome is the default home directory of the daemon.
var DefaultNodeHome = defaultHome()

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + app.Name
	}
	return filepath.Join(home, "."+app.Name)
}

// LoadConfig resolves the configuration for a command invocation.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("home", DefaultNodeHome)
	v.SetDefault("log_level", zerolog.InfoLevel.String())
	v.SetDefault("chain_id", app.DefaultChainID)
	v.SetDefault("node", "")
	v.SetDefault("db_backend", string(dbm.GoLevelDBBackend))
	v.SetDefault("api.address", "localhost:1317")
	v.SetDefault("keys.passphrase", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"home":      flagHome,
		"log_level": flagLogLevel,
		"chain_id":  flagChainID,
		"node":      flagNode,
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	v.SetConfigFile(filepath.Join(v.GetString("home"), "config", "app.toml"))
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Home == "" {
		return errors.New("home is required")
	}
	if c.ChainID == "" {
		return errors.New("chain_id is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch dbm.BackendType(c.DBBackend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("unsupported db_backend %q", c.DBBackend)
	}
	return nil
}

// DataDir is where the application database lives.
func (c *Config) DataDir() string { return filepath.Join(c.Home, "data") }

// KeysDir is where key files live.
func (c *Config) KeysDir() string { return filepath.Join(c.Home, "keys") }
