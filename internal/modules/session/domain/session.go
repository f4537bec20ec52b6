package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// GameKey identifies which of the rehabilitation games a session
// belongs to. The set is closed - anything else is rejected at the
// boundary.
type GameKey string

const (
	GameKeyPianoTiles   GameKey = "piano_tiles"
	GameKeySpaceInvader GameKey = "space_invader"
	GameKeyDinosaur     GameKey = "dinosaur"
)

func ParseGameKey(raw string) (GameKey, error) {
	switch key := GameKey(raw); key {
	case GameKeyPianoTiles, GameKeySpaceInvader, GameKeyDinosaur:
		return key, nil
	default:
		return "", fmt.Errorf("unknown game_key - '%s'", raw)
	}
}

// Fingers lists the finger names a warmup baseline has to cover.
var Fingers = []string{"thumb", "index", "middle", "ring", "pinky"}

const maxFlexAngleDegrees = 180.0

// BaselineByFinger maps a finger name to the flex angle (degrees)
// measured during warmup. Stored as a jsonb blob.
type BaselineByFinger map[string]float64

// Validate requires a reading for every finger, each a plausible
// flex angle.
func (b BaselineByFinger) Validate() error {
	for _, finger := range Fingers {
		angle, found := b[finger]
		if !found {
			return fmt.Errorf("missing baseline for finger '%s'", finger)
		}

		if math.IsNaN(angle) || math.IsInf(angle, 0) || angle <= 0 || angle > maxFlexAngleDegrees {
			return fmt.Errorf("baseline for finger '%s' out of range - %v", finger, angle)
		}
	}

	if len(b) != len(Fingers) {
		return fmt.Errorf("baseline contains unknown finger names")
	}

	return nil
}

func (b BaselineByFinger) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}

	return json.Marshal(b)
}

func (b *BaselineByFinger) Scan(src interface{}) error {
	return scanJSON(src, b)
}

// Metrics holds finish-time fields that have no dedicated column.
type Metrics map[string]interface{}

func (m Metrics) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}

	return json.Marshal(m)
}

func (m *Metrics) Scan(src interface{}) error {
	return scanJSON(src, m)
}

func scanJSON(src interface{}, dest interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(src, dest)
	case string:
		return json.Unmarshal([]byte(src), dest)
	default:
		return fmt.Errorf("cannot scan %T into jsonb destination", src)
	}
}

// Session is one play-through of one game, spanning start to finish.
// Finish-time metrics stay nil until the finish call.
type Session struct {
	ID              string           `db:"id" json:"session_id"`
	GameKey         GameKey          `db:"game_key" json:"game_key"`
	Baseline        BaselineByFinger `db:"baseline_by_finger" json:"baseline_by_finger"`
	Score           *int             `db:"score" json:"score"`
	Accuracy        *float64         `db:"accuracy" json:"accuracy"`
	RomPercent      *float64         `db:"rom_percent" json:"rom_percent"`
	ReactionTimeMS  *float64         `db:"reaction_time_ms" json:"reaction_time"`
	Smoothness      *float64         `db:"smoothness" json:"smoothness"`
	ResidualMetrics Metrics          `db:"metrics" json:"metrics"`
	TotalEvents     int              `db:"total_events" json:"total_events"`
	StartedAt       time.Time        `db:"started_at" json:"started_at"`
	FinishedAt      *time.Time       `db:"finished_at" json:"finished_at"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}

// Finished reports whether the finish call already happened.
func (s Session) Finished() bool {
	return s.FinishedAt != nil
}

// Event is a single gameplay tick. Appended to the session's durable
// event log and acknowledged with a running count.
type Event struct {
	ID          string     `db:"id" json:"-"`
	SessionID   string     `db:"session_id" json:"-"`
	TimestampMS int64      `db:"timestamp_ms" json:"timestamp_ms"`
	Hit         bool       `db:"hit" json:"hit"`
	FlexAngle   float64    `db:"flex_angle" json:"flex_angle"`
	Accuracy    *float64   `db:"accuracy" json:"accuracy"`
	RomPercent  *float64   `db:"rom_percent" json:"rom_percent"`
	CreatedAt   time.Time  `db:"created_at" json:"-"`
}
