package workout

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// DraftDB keeps the in-progress draft on disk so it survives a failed save or
// a restart.
//
// Writes carry a version from NextVersion. A write is applied only when its
// version is newer than the stored one, so writes issued from concurrent
// goroutines land in the order their versions were taken. Deletes leave a
// versioned tombstone for the same reason.
type DraftDB struct {
	db  *sql.DB
	seq atomic.Int64
}

// OpenDraftDB opens (or creates) the SQLite draft database at dir/draft.db.
func OpenDraftDB(dir string) (*DraftDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "draft.db"))
	if err != nil {
		return nil, fmt.Errorf("opening draft db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS drafts (
		user_id    INTEGER PRIMARY KEY,
		version    INTEGER NOT NULL DEFAULT 0,
		body       TEXT,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating draft table: %w", err)
	}

	var last int64
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM drafts`).Scan(&last); err != nil {
		db.Close()
		return nil, fmt.Errorf("reading draft version: %w", err)
	}

	s := &DraftDB{db: db}
	s.seq.Store(last)
	return s, nil
}

// NextVersion returns a version newer than every one handed out or stored
// before, including by earlier processes.
func (s *DraftDB) NextVersion() int64 {
	return s.seq.Add(1)
}

// Save stores d for userID at version, replacing an older draft. An empty
// draft is deleted instead. A write older than the stored version is dropped.
func (s *DraftDB) Save(userID int, version int64, d *Draft) error {
	if d.Empty() {
		return s.Delete(userID, version)
	}
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	if err := s.put(userID, version, string(body)); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Load returns the stored draft for userID, or nil if there is none.
func (s *DraftDB) Load(userID int) (*Draft, error) {
	var body sql.NullString
	err := s.db.QueryRow(`SELECT body FROM drafts WHERE user_id = ?`, userID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	if !body.Valid {
		return nil, nil
	}
	var d Draft
	if err := json.Unmarshal([]byte(body.String), &d); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return &d, nil
}

// Delete removes the stored draft for userID unless a newer version was
// written.
func (s *DraftDB) Delete(userID int, version int64) error {
	if err := s.put(userID, version, nil); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

func (s *DraftDB) put(userID int, version int64, body any) error {
	_, err := s.db.Exec(`
		INSERT INTO drafts (user_id, version, body, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE SET
			version    = excluded.version,
			body       = excluded.body,
			updated_at = excluded.updated_at
		WHERE excluded.version > drafts.version`,
		userID, version, body,
	)
	return err
}

// Close closes the draft database.
func (s *DraftDB) Close() error {
	return s.db.Close()
}
