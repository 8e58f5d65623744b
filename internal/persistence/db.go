// Package persistence provides the SQLite chronicle: a log of session
// notifications and a table of final scores. It never stores game state.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ForkArcade/river-valley-settlement/internal/engine"
)

// ErrNotFound is returned when a metadata key has no value.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite connection for the chronicle.
type DB struct {
	conn *sqlx.DB
}

// EventRow is a stored notification.
type EventRow struct {
	ID          int64  `db:"id"`
	Session     string `db:"session"`
	Turn        int    `db:"turn"`
	Kind        string `db:"kind"`
	Description string `db:"description"`
	Meta        string `db:"meta"`
}

// Score is a finished session.
type Score struct {
	Session    string    `db:"session"`
	Outcome    string    `db:"outcome"`
	Score      int       `db:"score"`
	Turn       int       `db:"turn"`
	Population int       `db:"population"`
	Buildings  int       `db:"buildings"`
	Identity   string    `db:"identity"`
	CreatedAt  time.Time `db:"created_at"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		turn INTEGER NOT NULL,
		kind TEXT NOT NULL,
		description TEXT NOT NULL,
		meta TEXT NOT NULL DEFAULT '{}'
	);

	CREATE TABLE IF NOT EXISTS scores (
		session TEXT PRIMARY KEY,
		outcome TEXT NOT NULL,
		score INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		population INTEGER NOT NULL,
		buildings INTEGER NOT NULL,
		identity TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chronicle_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session, turn);
	CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// encodeMeta renders event metadata as JSON; nil metadata is stored as {}.
func encodeMeta(e engine.Event) (string, error) {
	if e.Meta == nil {
		return "{}", nil
	}
	meta, err := json.Marshal(e.Meta)
	if err != nil {
		return "", fmt.Errorf("encode meta for %s turn %d: %w", e.Kind, e.Turn, err)
	}
	return string(meta), nil
}

// RecordEvent appends a notification to the log.
func (db *DB) RecordEvent(e engine.Event) error {
	meta, err := encodeMeta(e)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(
		"INSERT INTO events (session, turn, kind, description, meta) VALUES (?, ?, ?, ?, ?)",
		e.Session, e.Turn, string(e.Kind), e.Description, meta,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// SaveEvents writes a batch of notifications in one transaction.
func (db *DB) SaveEvents(events []engine.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex("INSERT INTO events (session, turn, kind, description, meta) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		meta, err := encodeMeta(e)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(e.Session, e.Turn, string(e.Kind), e.Description, meta); err != nil {
			return fmt.Errorf("insert event turn %d: %w", e.Turn, err)
		}
	}

	return tx.Commit()
}

// RecordScore stores the final score of a session. A session is scored once;
// later submissions for the same session replace the earlier one.
func (db *DB) RecordScore(s Score) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := db.conn.NamedExec(`INSERT OR REPLACE INTO scores
		(session, outcome, score, turn, population, buildings, identity, created_at)
		VALUES (:session, :outcome, :score, :turn, :population, :buildings, :identity, :created_at)`, s)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	slog.Info("score recorded", "session", s.Session, "outcome", s.Outcome, "score", s.Score)
	return nil
}

// TopScores returns the best scores, highest first.
func (db *DB) TopScores(limit int) ([]Score, error) {
	var scores []Score
	err := db.conn.Select(&scores,
		`SELECT session, outcome, score, turn, population, buildings, identity, created_at
		 FROM scores ORDER BY score DESC, created_at ASC LIMIT ?`,
		limit,
	)
	return scores, err
}

// RecentEvents returns the most recent N notifications, newest first.
func (db *DB) RecentEvents(limit int) ([]EventRow, error) {
	var events []EventRow
	err := db.conn.Select(&events,
		"SELECT id, session, turn, kind, description, meta FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}

// SessionEvents returns every notification of a session in emission order.
func (db *DB) SessionEvents(session string) ([]EventRow, error) {
	var events []EventRow
	err := db.conn.Select(&events,
		"SELECT id, session, turn, kind, description, meta FROM events WHERE session = ? ORDER BY id",
		session,
	)
	return events, err
}

// SaveMeta stores a key-value pair in chronicle metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO chronicle_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM chronicle_meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %q: %w", key, ErrNotFound)
	}
	return value, err
}

// ScoreFromEvent builds a score row from a game-over notification.
func ScoreFromEvent(e engine.Event) (Score, bool) {
	if e.Kind != engine.KindGameOver {
		return Score{}, false
	}
	s := Score{Session: e.Session, Turn: e.Turn}
	s.Outcome, _ = e.Meta["outcome"].(string)
	s.Score, _ = e.Meta["score"].(int)
	s.Population, _ = e.Meta["population"].(int)
	s.Buildings, _ = e.Meta["buildings"].(int)
	s.Identity, _ = e.Meta["identity"].(string)
	return s, true
}

// Recorder returns a notification listener that logs every event and
// scores finished sessions. Write failures are logged, not returned.
func (db *DB) Recorder() func(engine.Event) {
	return func(e engine.Event) {
		if err := db.RecordEvent(e); err != nil {
			slog.Error("chronicle event", "error", err)
		}
		if s, ok := ScoreFromEvent(e); ok {
			if err := db.RecordScore(s); err != nil {
				slog.Error("chronicle score", "error", err)
			}
		}
	}
}
