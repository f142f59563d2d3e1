package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"snakegame/app"
	"snakegame/x/snake/types"
)

const (
	flagFrom   = "from"
	flagPlayer = "player"
)

// TxCmd groups the transaction commands.
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Sign and submit transactions",
	}
	cmd.PersistentFlags().String(flagFrom, "", "name of the key to sign with")
	_ = cmd.MarkPersistentFlagRequired(flagFrom)

	cmd.AddCommand(
		initPlayerCmd(),
		submitScoreCmd(),
		initLeaderboardCmd(),
		updateLeaderboardCmd(),
		playCmd(),
	)
	return cmd
}

// signer loads the --from key and its bech32 identity.
type signer struct {
	ks      *Keystore
	address string
	sign    func(types.Msg, uint64) (app.Tx, error)
}

func loadSigner(cmd *cobra.Command) (*signer, error) {
	from, err := cmd.Flags().GetString(flagFrom)
	if err != nil {
		return nil, err
	}
	ks := keystoreFor(cmd)
	priv, err := ks.PrivKey(from)
	if err != nil {
		return nil, err
	}
	chainID := GetConfig(cmd).ChainID
	return &signer{
		ks:      ks,
		address: app.SignerOf(priv),
		sign: func(msg types.Msg, sequence uint64) (app.Tx, error) {
			return app.Sign(priv, chainID, sequence, msg)
		},
	}, nil
}

// broadcast signs each message at the signer's current sequence and submits
// it, stopping at the first failure.
func broadcast(cmd *cobra.Command, s *signer, msgs ...types.Msg) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	results := make([]json.RawMessage, 0, len(msgs))
	for _, msg := range msgs {
		seq, err := c.Sequence(cmd.Context(), s.address)
		if err != nil {
			return err
		}
		tx, err := s.sign(msg, seq)
		if err != nil {
			return err
		}
		res, err := c.Broadcast(cmd.Context(), tx)
		if err != nil {
			return fmt.Errorf("%s: %w", msg.Type(), err)
		}
		results = append(results, res)
	}
	if len(results) == 1 {
		return printJSON(cmd, results[0])
	}
	return printJSON(cmd, results)
}

func parseScore(arg string) (uint32, error) {
	score, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", arg, err)
	}
	return uint32(score), nil
}

func initPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-player [display-name]",
		Short: "Create the player record of the --from identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			return broadcast(cmd, s, types.NewMsgInitializePlayer(s.address, args[0]))
		},
	}
}

func submitScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-score [score]",
		Short: "Record a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := parseScore(args[0])
			if err != nil {
				return err
			}
			s, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			player, err := cmd.Flags().GetString(flagPlayer)
			if err != nil {
				return err
			}
			if player != "" {
				if player, err = s.ks.ResolveAddress(player); err != nil {
					return err
				}
			}
			return broadcast(cmd, s, types.NewMsgSubmitScore(s.address, player, score))
		},
	}
	cmd.Flags().String(flagPlayer, "", "owner of the record to submit to (address or key name); defaults to --from")
	return cmd
}

func initLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-leaderboard",
		Short: "Create the global leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			return broadcast(cmd, s, types.NewMsgInitializeLeaderboard(s.address))
		},
	}
}

func updateLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update-leaderboard [player]",
		Short: "Merge a player's high score into the leaderboard",
		Long:  "Merge a player's high score into the leaderboard. The player is an address or a key name and defaults to --from.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			player := s.address
			if len(args) == 1 {
				if player, err = s.ks.ResolveAddress(args[0]); err != nil {
					return err
				}
			}
			return broadcast(cmd, s, types.NewMsgUpdateLeaderboard(s.address, player))
		},
	}
}

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play [score]",
		Short: "Submit a score and merge the new high score into the leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := parseScore(args[0])
			if err != nil {
				return err
			}
			s, err := loadSigner(cmd)
			if err != nil {
				return err
			}
			return broadcast(cmd, s,
				types.NewMsgSubmitScore(s.address, "", score),
				types.NewMsgUpdateLeaderboard(s.address, s.address),
			)
		},
	}
}
