package archive

import "time"

// AIOpponent is the player identity recorded for the computer opponent.
const AIOpponent = "AI"

// Winner values for a MatchRecord.
const (
	WinnerX    = "X"
	WinnerO    = "O"
	WinnerDraw = "D"
)

// MatchRecord describes one finished round. Records are created exactly once
// per terminal outcome and never mutated.
type MatchRecord struct {
	RoomCode string    `json:"room_code"`
	PlayerX  string    `json:"player_x"`
	PlayerO  string    `json:"player_o"` // identity or "AI"
	Winner   string    `json:"winner"`   // "X", "O", or "D"
	PlayedAt time.Time `json:"played_at"`
}

// Archive is the match sink. Record must complete or fail within bounded
// time; gameplay never waits on it beyond a local write.
type Archive interface {
	// Record appends a finished match.
	Record(record *MatchRecord) error

	// Recent returns up to limit records, newest first.
	Recent(limit int) ([]*MatchRecord, error)
}
