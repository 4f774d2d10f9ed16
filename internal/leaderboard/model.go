package leaderboard

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"scoreboard/internal/logger"
)

const (
	MaxEntries    = 10
	MaxNameLength = 12
	MinScore      = 0
	MaxScore      = 100000
)

type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Level int       `json:"level"`
	Date  Timestamp `json:"date"`
}

// Board is ordered by score, highest first, once normalized.
type Board []Entry

// Timestamp is written as RFC 3339 in UTC. It also reads the zoneless
// layouts older boards were written with, treating them as UTC. A date it
// cannot read becomes the zero time so one bad row never hides the board.
type Timestamp struct {
	time.Time
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		logger.Log.Warn("unreadable entry date", zap.ByteString("date", b), zap.Error(err))
		return nil
	}
	if s == "" {
		return nil
	}

	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v.UTC()
		return nil
	}
	for _, layout := range zonelessLayouts {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = v.UTC()
			return nil
		}
	}

	logger.Log.Warn("unreadable entry date", zap.String("date", s))
	return nil
}
