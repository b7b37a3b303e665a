// Package save implements the on-disk save format and the save
// directory layout: named saves, autosaves, quicksaves, checkpoints,
// exports, and the checksum/backup chain that guards them.
package save

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Errors reported by the persistence layer.
var (
	ErrCorruptSave  = errors.New("save: file is corrupt and no valid backup exists")
	ErrSaveNotFound = errors.New("save: file does not exist")
	ErrBadExtension = errors.New("save: path must end in .json or .2048")
)

// GameData is the payload of a save file: the serializable board state
// plus the moment it was written.
type GameData struct {
	board.State
	Timestamp string `json:"timestamp"`
}

// Envelope wraps GameData with its integrity checksum. The checksum is
// the SHA-256 of the canonical (sorted-key) JSON serialization of
// game_data; load recomputes and compares it before trusting the file.
type Envelope struct {
	GameData GameData `json:"game_data"`
	Checksum string   `json:"checksum"`
}

// canonicalJSON produces a deterministic serialization of v by
// remarshalling through generic maps, which Go encodes with sorted
// keys.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// checksum computes the integrity hash for a payload.
func checksum(data GameData) (string, error) {
	canonical, err := canonicalJSON(data)
	if err != nil {
		return "", fmt.Errorf("save: cannot canonicalize game data: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Seal validates st and wraps it in a checksummed envelope stamped with
// the current time.
func Seal(st board.State, now time.Time) (Envelope, error) {
	if err := validateState(st); err != nil {
		return Envelope{}, err
	}
	data := GameData{
		State:     st,
		Timestamp: now.Format(time.RFC3339),
	}
	sum, err := checksum(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{GameData: data, Checksum: sum}, nil
}

// Verify recomputes the envelope's checksum and compares it with the
// stored one.
func Verify(env Envelope) bool {
	if env.Checksum == "" {
		return false
	}
	sum, err := checksum(env.GameData)
	if err != nil {
		return false
	}
	return sum == env.Checksum
}

// Open verifies and validates an envelope, returning the contained
// board state. Data that fails either check never reaches the caller.
func Open(env Envelope) (board.State, error) {
	if !Verify(env) {
		return board.State{}, fmt.Errorf("save: checksum mismatch: %w", ErrCorruptSave)
	}
	if err := validateState(env.GameData.State); err != nil {
		return board.State{}, err
	}
	return env.GameData.State, nil
}

// validateState applies the boundary validation rules: a structurally
// sound power-of-two grid and a non-negative score, for the live state
// and every history entry.
func validateState(st board.State) error {
	if err := st.Grid.Validate(); err != nil {
		return err
	}
	if st.Size != st.Grid.Size() {
		return fmt.Errorf("%w: declared size %d", board.ErrInvalidBoard, st.Size)
	}
	if st.Score < 0 {
		return fmt.Errorf("%w: %d", board.ErrInvalidScore, st.Score)
	}
	for _, snap := range st.History {
		if err := snap.Grid.Validate(); err != nil {
			return err
		}
		if snap.Score < 0 {
			return fmt.Errorf("%w: %d in history", board.ErrInvalidScore, snap.Score)
		}
	}
	return nil
}
