package history

import (
	"database/sql"
	"fmt"
	"time"

	"vlcpresence/pkg/models"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Entry is one track change observed by the poll loop
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Filename  string    `json:"filename"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Album     string    `json:"album"`
	Category  string    `json:"category"`
	Length    int64     `json:"length"` // in seconds
	StartedAt time.Time `json:"startedAt"`
}

// Journal appends track changes to a SQLite database. It is write-mostly:
// nothing read back from it feeds the reconciliation engine.
type Journal struct {
	conn      *sql.DB
	logger    *logrus.Logger
	sessionID string

	insertStmt *sql.Stmt
	recentStmt *sql.Stmt
}

// Open opens (or creates) the journal at dbPath. Each call starts a new
// session so plays from different runs can be told apart.
func Open(dbPath string, logger *logrus.Logger) (*Journal, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?cache=shared&mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			logger.WithError(err).WithField("pragma", pragma).Warn("Failed to set pragma")
		}
	}

	j := &Journal{
		conn:      conn,
		logger:    logger,
		sessionID: uuid.NewString(),
	}

	if err := j.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := j.prepareStatements(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"db_path":    dbPath,
		"session_id": j.sessionID,
	}).Info("History journal initialized")
	return j, nil
}

func (j *Journal) createTables() error {
	playsTable := `
	CREATE TABLE IF NOT EXISTS plays (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT NOT NULL,
		category TEXT NOT NULL,
		length INTEGER DEFAULT 0,
		started_at DATETIME NOT NULL
	);`

	playsIndex := `CREATE INDEX IF NOT EXISTS idx_plays_started_at ON plays(started_at);`

	for _, stmt := range []string{playsTable, playsIndex} {
		if _, err := j.conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) prepareStatements() error {
	var err error

	j.insertStmt, err = j.conn.Prepare(`
		INSERT INTO plays (session_id, filename, title, artist, album, category, length, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}

	j.recentStmt, err = j.conn.Prepare(`
		SELECT id, session_id, filename, title, artist, album, category, length, started_at
		FROM plays ORDER BY started_at DESC, id DESC LIMIT ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare recent statement: %w", err)
	}

	return nil
}

// SessionID returns the identifier stamped on entries of this run
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Record stores a track change; category is the resolved display category
func (j *Journal) Record(snap *models.Snapshot, category string, startedAt time.Time) (int64, error) {
	result, err := j.insertStmt.Exec(
		j.sessionID,
		snap.Filename(),
		snap.Title(),
		snap.Artist(),
		snap.Album(),
		category,
		snap.LengthSeconds(),
		startedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record play: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get play id: %w", err)
	}

	j.logger.WithFields(logrus.Fields{
		"id":       id,
		"filename": snap.Filename(),
	}).Debug("Recorded play")
	return id, nil
}

// Recent returns up to limit entries, newest first
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.recentStmt.Query(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Filename, &e.Title, &e.Artist,
			&e.Album, &e.Category, &e.Length, &e.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes prepared statements and the database
func (j *Journal) Close() error {
	if j.insertStmt != nil {
		j.insertStmt.Close()
	}
	if j.recentStmt != nil {
		j.recentStmt.Close()
	}
	return j.conn.Close()
}
