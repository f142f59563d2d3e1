package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	playerRecordDiscriminator = accountDiscriminator("PlayerRecord")
	leaderboardDiscriminator  = accountDiscriminator("Leaderboard")
)

func accountDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("account:" + name))
	return sum[:DiscriminatorSize]
}

// MarshalPlayerRecord encodes p in its persisted layout, little-endian:
// discriminator(8) owner(32) name(4+n) high_score(4) games_played(4).
func MarshalPlayerRecord(p PlayerRecord) ([]byte, error) {
	if err := ValidateIdentity(p.Owner); err != nil {
		return nil, err
	}
	size := DiscriminatorSize + IdentitySize + 4 + len(p.DisplayName) + 4 + 4
	if size > PlayerRecordSpace {
		return nil, errorsmod.Wrapf(ErrSerializationOverflow, "player record needs %d bytes, space is %d", size, PlayerRecordSpace)
	}

	bz := make([]byte, 0, size)
	bz = append(bz, playerRecordDiscriminator...)
	bz = append(bz, p.Owner...)
	bz = appendString(bz, p.DisplayName)
	bz = binary.LittleEndian.AppendUint32(bz, p.HighScore)
	bz = binary.LittleEndian.AppendUint32(bz, p.GamesPlayed)
	return bz, nil
}

// UnmarshalPlayerRecord decodes a record produced by MarshalPlayerRecord.
func UnmarshalPlayerRecord(bz []byte) (PlayerRecord, error) {
	d := decoder{bz: bz}
	d.discriminator(playerRecordDiscriminator)
	p := PlayerRecord{
		Owner:       d.readIdentity(),
		DisplayName: d.readString(),
		HighScore:   d.readUint32(),
		GamesPlayed: d.readUint32(),
	}
	if err := d.finish(); err != nil {
		return PlayerRecord{}, errorsmod.Wrap(err, "player record")
	}
	return p, nil
}

// MarshalLeaderboard encodes l in its persisted layout, little-endian:
// discriminator(8) administrator(32) count(4) then per entry
// player(32) name(4+n) score(4).
func MarshalLeaderboard(l Leaderboard) ([]byte, error) {
	if err := ValidateIdentity(l.Administrator); err != nil {
		return nil, err
	}
	if len(l.Entries) > MaxLeaderboardSize {
		return nil, errorsmod.Wrapf(ErrSerializationOverflow, "leaderboard holds %d entries, max %d", len(l.Entries), MaxLeaderboardSize)
	}

	size := DiscriminatorSize + IdentitySize + 4
	for _, e := range l.Entries {
		if err := ValidateIdentity(e.Player); err != nil {
			return nil, err
		}
		if len(e.DisplayName) > MaxDisplayNameLen {
			return nil, errorsmod.Wrapf(ErrSerializationOverflow, "entry name is %d bytes, max %d", len(e.DisplayName), MaxDisplayNameLen)
		}
		size += IdentitySize + 4 + len(e.DisplayName) + 4
	}
	if size > LeaderboardSpace {
		return nil, errorsmod.Wrapf(ErrSerializationOverflow, "leaderboard needs %d bytes, space is %d", size, LeaderboardSpace)
	}

	bz := make([]byte, 0, size)
	bz = append(bz, leaderboardDiscriminator...)
	bz = append(bz, l.Administrator...)
	bz = binary.LittleEndian.AppendUint32(bz, uint32(len(l.Entries)))
	for _, e := range l.Entries {
		bz = append(bz, e.Player...)
		bz = appendString(bz, e.DisplayName)
		bz = binary.LittleEndian.AppendUint32(bz, e.Score)
	}
	return bz, nil
}

// UnmarshalLeaderboard decodes a leaderboard produced by MarshalLeaderboard.
func UnmarshalLeaderboard(bz []byte) (Leaderboard, error) {
	d := decoder{bz: bz}
	d.discriminator(leaderboardDiscriminator)
	l := Leaderboard{Administrator: d.readIdentity()}
	n := d.readUint32()
	if d.err == nil && n > MaxLeaderboardSize {
		d.err = errorsmod.Wrapf(ErrSerializationOverflow, "entry count %d, max %d", n, MaxLeaderboardSize)
	}
	l.Entries = make([]LeaderboardEntry, 0, MaxLeaderboardSize)
	for i := uint32(0); d.err == nil && i < n; i++ {
		l.Entries = append(l.Entries, LeaderboardEntry{
			Player:      d.readIdentity(),
			DisplayName: d.readString(),
			Score:       d.readUint32(),
		})
	}
	if err := d.finish(); err != nil {
		return Leaderboard{}, errorsmod.Wrap(err, "leaderboard")
	}
	return l, nil
}

func appendString(bz []byte, s string) []byte {
	bz = binary.LittleEndian.AppendUint32(bz, uint32(len(s)))
	return append(bz, s...)
}

// decoder reads fields sequentially and keeps the first error.
type decoder struct {
	bz  []byte
	off int
	err error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || len(d.bz)-d.off < n {
		d.err = errorsmod.Wrapf(ErrInvalidRequest, "truncated account data at offset %d", d.off)
		return nil
	}
	out := d.bz[d.off : d.off+n]
	d.off += n
	return out
}

func (d *decoder) discriminator(want []byte) {
	got := d.take(DiscriminatorSize)
	if d.err == nil && !bytes.Equal(got, want) {
		d.err = errorsmod.Wrap(ErrInvalidRequest, "account discriminator mismatch")
	}
}

func (d *decoder) readIdentity() sdk.AccAddress {
	b := d.take(IdentitySize)
	if b == nil {
		return nil
	}
	return sdk.AccAddress(bytes.Clone(b))
}

func (d *decoder) readUint32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) readString() string {
	n := d.readUint32()
	if d.err == nil && n > MaxDisplayNameLen {
		d.err = errorsmod.Wrapf(ErrSerializationOverflow, "string length %d, max %d", n, MaxDisplayNameLen)
		return ""
	}
	return string(d.take(int(n)))
}

func (d *decoder) finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.bz) {
		return errorsmod.Wrapf(ErrInvalidRequest, "%d trailing bytes", len(d.bz)-d.off)
	}
	return nil
}
