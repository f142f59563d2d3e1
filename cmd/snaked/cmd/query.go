package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"snakegame/app"
)

// QueryCmd groups the read-only commands.
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query player records and the leaderboard",
	}
	cmd.AddCommand(
		ownerQueryCmd("player [owner]", "Show the player record of an owner", Client.Player),
		ownerQueryCmd("address [owner]", "Show the derived record address of an owner", Client.PlayerAddress),
		ownerQueryCmd("rank [owner]", "Show the leaderboard positions held by an owner", Client.Rank),
		ownerQueryCmd("sequence [owner]", "Show the sequence the next transaction of an owner must carry", sequenceJSON),
		&cobra.Command{
			Use:   "leaderboard",
			Short: "Show the leaderboard",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runQuery(cmd, func(ctx context.Context, c Client) (json.RawMessage, error) {
					return c.Leaderboard(ctx)
				})
			},
		},
	)
	return cmd
}

func ownerQueryCmd(use, short string, fn func(Client, context.Context, string) (json.RawMessage, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ". The owner is a bech32 address or the name of a local key.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := keystoreFor(cmd).ResolveAddress(args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx context.Context, c Client) (json.RawMessage, error) {
				return fn(c, ctx, owner)
			})
		},
	}
}

func sequenceJSON(c Client, ctx context.Context, owner string) (json.RawMessage, error) {
	seq, err := c.Sequence(ctx, owner)
	if err != nil {
		return nil, err
	}
	return json.Marshal(app.SequenceResponse{Address: owner, Sequence: seq})
}

func runQuery(cmd *cobra.Command, fn func(context.Context, Client) (json.RawMessage, error)) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()
	res, err := fn(cmd.Context(), c)
	if err != nil {
		return err
	}
	return printJSON(cmd, res)
}
