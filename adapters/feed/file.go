package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"titlequote/core/rates"
	"titlequote/internal/errors"
)

// Snapshot is the on-disk feed format: the table bundle plus version
// metadata. ContentHash is the sha256 of the canonical JSON encoding of
// Tables; a snapshot whose hash does not match its tables is refused.
type Snapshot struct {
	// ID is the snapshot identifier assigned upstream
	ID string `json:"id,omitempty"`

	// ContentHash is the sha256 hex digest of the canonical table JSON
	ContentHash string `json:"content_hash,omitempty"`

	// CreatedAt is when the snapshot was published
	CreatedAt time.Time `json:"created_at,omitempty"`

	// Tables is the table bundle
	Tables rates.Tables `json:"tables"`
}

// FileSource loads the feed from a JSON snapshot file.
type FileSource struct {
	path string
}

// NewFileSource creates a file source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and verifies the snapshot file.
func (s *FileSource) Load(ctx context.Context) (rates.Tables, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return rates.Tables{}, errors.NotFound("feed snapshot", s.path)
		}
		return rates.Tables{}, errors.Feed("failed to read feed snapshot", err).
			WithContext("path", s.path)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return rates.Tables{}, errors.Feed("failed to parse feed snapshot", err).
			WithContext("path", s.path)
	}

	// Hash verification is opt-in: snapshots authored without a hash
	// load as-is, snapshots with one must match it.
	if snap.ContentHash != "" {
		canonical, err := json.Marshal(snap.Tables)
		if err != nil {
			return rates.Tables{}, errors.Feed("failed to serialize tables", err)
		}
		sum := sha256.Sum256(canonical)
		if hex.EncodeToString(sum[:]) != snap.ContentHash {
			return rates.Tables{}, errors.New(errors.TypeFeed,
				"feed snapshot hash mismatch: data may be corrupted").
				WithContext("path", s.path)
		}
	}

	return snap.Tables, nil
}

// WriteSnapshot serializes tables with computed hash metadata. Used by
// tooling that publishes feed files; the engine itself never writes.
func WriteSnapshot(path string, tables rates.Tables) error {
	canonical, err := json.Marshal(tables)
	if err != nil {
		return errors.Feed("failed to serialize tables", err)
	}
	sum := sha256.Sum256(canonical)
	hash := hex.EncodeToString(sum[:])

	snap := Snapshot{
		ID:          "rates-" + hash[:12],
		ContentHash: hash,
		CreatedAt:   time.Now().UTC(),
		Tables:      tables,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Feed("failed to serialize snapshot", err)
	}

	// Write atomically using a temp file
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return errors.Feed("failed to write snapshot", err)
	}
	return os.Rename(tempPath, path)
}
