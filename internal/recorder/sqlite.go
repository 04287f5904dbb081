package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"PortfolioLens/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists session history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so a dashboard can read while the session writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS session_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			instance  TEXT NOT NULL,
			kind      TEXT NOT NULL,
			day_sec   INTEGER,
			x         REAL,
			y         REAL,
			detail    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_instance ON session_events(instance, id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Record(e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := e.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var day sql.NullInt64
	if e.Day.Valid {
		day = sql.NullInt64{Int64: int64(e.Day.Key), Valid: true}
	}
	_, err := r.db.Exec(`INSERT INTO session_events
		(timestamp, instance, kind, day_sec, x, y, detail)
		VALUES (?,?,?,?,?,?,?)`,
		ts.Unix(), e.Instance, string(e.Kind), day, e.X, e.Y, e.Detail,
	)
	return err
}

// Entries returns the recorded history of one annotator instance in insertion order.
func (r *SQLiteRecorder) Entries(instance string) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, kind, day_sec, x, y, detail
		FROM session_events WHERE instance = ? ORDER BY id`, instance)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			ts     int64
			kind   string
			day    sql.NullInt64
			detail sql.NullString
			e      = Entry{Instance: instance}
		)
		if err := rows.Scan(&ts, &kind, &day, &e.X, &e.Y, &detail); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Time = time.Unix(ts, 0)
		e.Kind = Kind(kind)
		if day.Valid {
			e.Day = model.SomeDay(model.DayKey(day.Int64))
		}
		e.Detail = detail.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
