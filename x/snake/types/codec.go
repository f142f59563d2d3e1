package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

var (
	_ collcodec.ValueCodec[PlayerRecord] = PlayerRecordValue{}
	_ collcodec.ValueCodec[Leaderboard]  = LeaderboardValue{}
)

// PlayerRecordValue stores player records in their fixed binary layout.
type PlayerRecordValue struct{}

func (PlayerRecordValue) Encode(value PlayerRecord) ([]byte, error) {
	return MarshalPlayerRecord(value)
}
func (PlayerRecordValue) Decode(bz []byte) (PlayerRecord, error) { return UnmarshalPlayerRecord(bz) }
func (PlayerRecordValue) EncodeJSON(value PlayerRecord) ([]byte, error) {
	return json.Marshal(value)
}
func (PlayerRecordValue) DecodeJSON(bz []byte) (PlayerRecord, error) {
	var p PlayerRecord
	return p, json.Unmarshal(bz, &p)
}
func (PlayerRecordValue) Stringify(value PlayerRecord) string {
	return fmt.Sprintf("owner=%s,name=%q,high=%d,games=%d", value.Owner, value.DisplayName, value.HighScore, value.GamesPlayed)
}
func (PlayerRecordValue) ValueType() string { return "snake/PlayerRecord" }

// LeaderboardValue stores the leaderboard in its fixed binary layout.
type LeaderboardValue struct{}

func (LeaderboardValue) Encode(value Leaderboard) ([]byte, error) { return MarshalLeaderboard(value) }
func (LeaderboardValue) Decode(bz []byte) (Leaderboard, error)    { return UnmarshalLeaderboard(bz) }
func (LeaderboardValue) EncodeJSON(value Leaderboard) ([]byte, error) {
	return json.Marshal(value)
}
func (LeaderboardValue) DecodeJSON(bz []byte) (Leaderboard, error) {
	var l Leaderboard
	return l, json.Unmarshal(bz, &l)
}
func (LeaderboardValue) Stringify(value Leaderboard) string {
	return fmt.Sprintf("admin=%s,entries=%d", value.Administrator, len(value.Entries))
}
func (LeaderboardValue) ValueType() string { return "snake/Leaderboard" }
