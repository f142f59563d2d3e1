package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/cosmos/cosmos-sdk/crypto"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
)

const keyAlgo = "ed25519"

var keyNameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

// keyFile is the on-disk form of a named identity.
type keyFile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Armor   string `json:"armor"`
}

// Keystore stores armored ed25519 keys as JSON files in a directory.
type Keystore struct {
	dir        string
	passphrase string
}

func NewKeystore(dir, passphrase string) *Keystore {
	return &Keystore{dir: dir, passphrase: passphrase}
}

func (ks *Keystore) path(name string) string {
	return filepath.Join(ks.dir, name+".json")
}

// Add generates and stores a new key under name.
func (ks *Keystore) Add(name string) (keyFile, error) {
	if !keyNameRe.MatchString(name) {
		return keyFile{}, fmt.Errorf("invalid key name %q", name)
	}
	if _, err := os.Stat(ks.path(name)); err == nil {
		return keyFile{}, fmt.Errorf("key %q already exists", name)
	}
	if err := os.MkdirAll(ks.dir, 0o700); err != nil {
		return keyFile{}, err
	}

	priv := ed25519.GenPrivKey()
	kf := keyFile{
		Name:    name,
		Address: sdk.AccAddress(priv.PubKey().Bytes()).String(),
		Armor:   crypto.EncryptArmorPrivKey(priv, ks.passphrase, keyAlgo),
	}
	bz, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return keyFile{}, err
	}
	if err := os.WriteFile(ks.path(name), bz, 0o600); err != nil {
		return keyFile{}, err
	}
	return kf, nil
}

// Show returns the stored key file for name.
func (ks *Keystore) Show(name string) (keyFile, error) {
	bz, err := os.ReadFile(ks.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return keyFile{}, fmt.Errorf("key %q not found", name)
		}
		return keyFile{}, err
	}
	var kf keyFile
	if err := json.Unmarshal(bz, &kf); err != nil {
		return keyFile{}, fmt.Errorf("decode key %q: %w", name, err)
	}
	return kf, nil
}

// List returns every stored key sorted by name.
func (ks *Keystore) List() ([]keyFile, error) {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []keyFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		kf, err := ks.Show(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		out = append(out, kf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// PrivKey decrypts the key stored under name.
func (ks *Keystore) PrivKey(name string) (*ed25519.PrivKey, error) {
	kf, err := ks.Show(name)
	if err != nil {
		return nil, err
	}
	pk, algo, err := crypto.UnarmorDecryptPrivKey(kf.Armor, ks.passphrase)
	if err != nil {
		return nil, fmt.Errorf("decrypt key %q: %w", name, err)
	}
	priv, ok := pk.(*ed25519.PrivKey)
	if !ok || algo != keyAlgo {
		return nil, fmt.Errorf("key %q is %s, want %s", name, algo, keyAlgo)
	}
	return priv, nil
}

// ResolveAddress accepts either a bech32 address or the name of a stored key.
func (ks *Keystore) ResolveAddress(nameOrAddress string) (string, error) {
	if _, err := sdk.AccAddressFromBech32(nameOrAddress); err == nil {
		return nameOrAddress, nil
	}
	kf, err := ks.Show(nameOrAddress)
	if err != nil {
		return "", fmt.Errorf("%q is neither an address nor a known key", nameOrAddress)
	}
	return kf.Address, nil
}

func keystoreFor(cmd *cobra.Command) *Keystore {
	cfg := GetConfig(cmd)
	return NewKeystore(cfg.KeysDir(), cfg.Keys.Passphrase)
}

// KeysCmd manages local identities.
func KeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage local ed25519 identities",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add [name]",
			Short: "Generate a new identity",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kf, err := keystoreFor(cmd).Add(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"name": kf.Name, "address": kf.Address})
			},
		},
		&cobra.Command{
			Use:   "show [name]",
			Short: "Show the address of an identity",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kf, err := keystoreFor(cmd).Show(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"name": kf.Name, "address": kf.Address})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List identities",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				keys, err := keystoreFor(cmd).List()
				if err != nil {
					return err
				}
				out := make([]map[string]string, 0, len(keys))
				for _, kf := range keys {
					out = append(out, map[string]string{"name": kf.Name, "address": kf.Address})
				}
				return printJSON(cmd, out)
			},
		},
	)
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	var (
		bz  []byte
		err error
	)
	if raw, ok := v.(json.RawMessage); ok {
		bz = raw
	} else if bz, err = json.Marshal(v); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
