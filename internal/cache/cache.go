// Package cache persists ranked views keyed by the repository status
// fingerprint, so an unchanged repository skips the full history pass.
package cache

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"freck/internal/errors"
	"freck/internal/logging"
	"freck/internal/rank"
)

const dbFileName = "rankings.db"

// Store is a SQLite-backed cache of ranked views. Entries are valid only
// for the calendar day they were computed on: commit ages (and therefore
// scores) drift daily even without new commits.
type Store struct {
	conn    *sql.DB
	logger  *logging.Logger
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	now     func() time.Time
}

// OpenStore opens or creates the cache database under dir
func OpenStore(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.InternalError, "failed to create cache directory", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(errors.InternalError, "failed to open cache database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, errors.Wrap(errors.InternalError, "failed to set pragma", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS rankings (
			fingerprint TEXT PRIMARY KEY,
			computed_day TEXT NOT NULL,
			payload BLOB NOT NULL,
			created_at TEXT NOT NULL
		)
	`
	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(errors.InternalError, "failed to initialize cache schema", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(errors.InternalError, "failed to create zstd encoder", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		_ = conn.Close()
		return nil, errors.Wrap(errors.InternalError, "failed to create zstd decoder", err)
	}

	logger.Debug("Opened ranking cache", map[string]interface{}{
		"path": dbPath,
	})

	return &Store{
		conn:    conn,
		logger:  logger,
		encoder: encoder,
		decoder: decoder,
		now:     time.Now,
	}, nil
}

// Close releases the database and compression resources
func (s *Store) Close() error {
	s.encoder.Close()
	s.decoder.Close()
	return s.conn.Close()
}

// Get returns the cached ranked view for a fingerprint, missing when no
// entry exists or the entry was computed on an earlier day
func (s *Store) Get(fingerprint string) ([]rank.RankedFile, bool, error) {
	var day string
	var payload []byte
	err := s.conn.QueryRow(
		"SELECT computed_day, payload FROM rankings WHERE fingerprint = ?",
		fingerprint,
	).Scan(&day, &payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.InternalError, "failed to read cache entry", err)
	}

	if day != s.today() {
		// Stale by age drift; treat as a miss and let Put overwrite it.
		return nil, false, nil
	}

	raw, err := s.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, false, errors.Wrap(errors.InternalError, "failed to decompress cache entry", err)
	}

	var files []rank.RankedFile
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, false, errors.Wrap(errors.InternalError, "failed to decode cache entry", err)
	}

	return files, true, nil
}

// Put stores a ranked view under a fingerprint, replacing any previous
// entry for it
func (s *Store) Put(fingerprint string, files []rank.RankedFile) error {
	raw, err := json.Marshal(files)
	if err != nil {
		return errors.Wrap(errors.InternalError, "failed to encode ranked view", err)
	}
	payload := s.encoder.EncodeAll(raw, nil)

	_, err = s.conn.Exec(
		`INSERT INTO rankings (fingerprint, computed_day, payload, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(fingerprint) DO UPDATE SET
		   computed_day = excluded.computed_day,
		   payload = excluded.payload,
		   created_at = excluded.created_at`,
		fingerprint, s.today(), payload, s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.Wrap(errors.InternalError, "failed to write cache entry", err)
	}

	return nil
}

func (s *Store) today() string {
	return s.now().UTC().Format("2006-01-02")
}
