package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"snakegame/app"
)

type configKey struct{}

// NewRootCmd creates the root command of the daemon.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   app.Name + "d",
		Short: "Snake game high score daemon",
		Long: `snaked keeps per-player high score records and a global top-ten
leaderboard. Every state change is a signed transaction.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(flagHome, DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, zerolog.InfoLevel.String(), "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(flagChainID, app.DefaultChainID, "chain id transactions are signed for")
	rootCmd.PersistentFlags().String(flagNode, "", "HTTP address of a running node; the local database is used when empty")

	rootCmd.AddCommand(
		KeysCmd(),
		TxCmd(),
		QueryCmd(),
		ServeCmd(),
		GenesisCmd(),
	)

	return rootCmd
}

// GetConfig retrieves the config from the command context.
func GetConfig(cmd *cobra.Command) *Config {
	if c, ok := cmd.Context().Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		Home:      DefaultNodeHome,
		LogLevel:  zerolog.InfoLevel.String(),
		ChainID:   app.DefaultChainID,
		DBBackend: string(dbm.GoLevelDBBackend),
	}
}

// NewLogger builds the process logger at the configured level.
func NewLogger(cfg *Config, w io.Writer) log.Logger {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return log.NewLogger(w, log.LevelOption(lvl), log.ColorOption(false))
}

// openApp opens the local application state.
func openApp(cmd *cobra.Command, reg prometheus.Registerer) (*app.App, error) {
	cfg := GetConfig(cmd)
	if err := os.MkdirAll(cfg.DataDir(), 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := dbm.NewDB("application", dbm.BackendType(cfg.DBBackend), cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	a, err := app.New(NewLogger(cfg, cmd.ErrOrStderr()), db, cfg.ChainID, reg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}
