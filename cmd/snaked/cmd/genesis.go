package cmd

import (
	"os"

	"github.com/spf13/cobra"

	snakemodule "snakegame/x/snake/module"
)

const flagOutputFile = "output-document"

// GenesisCmd groups the genesis commands.
func GenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Import, export and validate genesis documents",
	}
	cmd.AddCommand(
		defaultGenesisCmd(),
		validateGenesisCmd(),
		importGenesisCmd(),
		exportGenesisCmd(),
	)
	return cmd
}

func defaultGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the default genesis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd, snakemodule.AppModuleBasic{}.DefaultGenesis(nil))
		},
	}
}

func validateGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a genesis document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := (snakemodule.AppModuleBasic{}).ValidateGenesis(nil, nil, bz); err != nil {
				return err
			}
			return printJSON(cmd, map[string]bool{"valid": true})
		},
	}
}

func importGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Load a genesis document into an empty local database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.InitChain(cmd.Context(), bz); err != nil {
				return err
			}
			return printJSON(cmd, map[string]int64{"height": a.LastHeight()})
		},
	}
}

func exportGenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the local state as a genesis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			bz, err := a.ExportGenesis(cmd.Context())
			if err != nil {
				return err
			}
			out, err := cmd.Flags().GetString(flagOutputFile)
			if err != nil {
				return err
			}
			if out != "" {
				return os.WriteFile(out, append(bz, '\n'), 0o644)
			}
			return printJSON(cmd, bz)
		},
	}
	cmd.Flags().String(flagOutputFile, "", "write the document to this file instead of stdout")
	return cmd
}
