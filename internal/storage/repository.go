// Package storage persists the Telegram group chat log in SQLite. The
// listener writes every message it sees; the activity scorer reads them back
// by local date.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

const lastUpdateKey = "last_update_id"

// Message is one chat message as stored. DatePH is the message date in the
// team's local timezone, formatted 2006-01-02, and is what daily queries key
// on.
type Message struct {
	MessageID int
	ChatID    int64
	UserID    int64
	Username  string
	FirstName string
	LastName  string
	Date      int64
	DatePH    string
	Text      string
	Type      string
	ReplyTo   int
	RawJSON   string
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveMessage stores one message, ignoring duplicates of the same
// (message_id, chat_id). It reports whether the row was new.
func (r *Repository) SaveMessage(ctx context.Context, m Message) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO messages
			(message_id, chat_id, user_id, username, first_name, last_name,
			 date, date_ph, text, message_type, reply_to_message_id, raw_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MessageID, m.ChatID, m.UserID, m.Username, m.FirstName, m.LastName,
		m.Date, m.DatePH, m.Text, m.Type, nullableInt(m.ReplyTo), m.RawJSON)
	if err != nil {
		return false, fmt.Errorf("insert message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// LastUpdateID returns the highest processed Telegram update id, or 0 when
// the listener has never run.
func (r *Repository) LastUpdateID(ctx context.Context) (int, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM metadata WHERE key = ?`, lastUpdateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read last update id: %w", err)
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse last update id %q: %w", value, err)
	}
	return id, nil
}

// SetLastUpdateID persists the highest processed Telegram update id.
func (r *Repository) SetLastUpdateID(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		lastUpdateKey, strconv.Itoa(id))
	if err != nil {
		return fmt.Errorf("set last update id: %w", err)
	}
	return nil
}

// MessagesOn returns every message of one local date, ordered by time.
func (r *Repository) MessagesOn(ctx context.Context, datePH string) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT message_id, chat_id, user_id, username, first_name, last_name,
		       date, date_ph, text, message_type, reply_to_message_id, raw_json
		FROM messages WHERE date_ph = ? ORDER BY date`, datePH)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var userID, replyTo sql.NullInt64
		var username, firstName, lastName, text, rawJSON sql.NullString
		if err := rows.Scan(&m.MessageID, &m.ChatID, &userID, &username, &firstName,
			&lastName, &m.Date, &m.DatePH, &text, &m.Type, &replyTo, &rawJSON); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.UserID = userID.Int64
		m.Username = username.String
		m.FirstName = firstName.String
		m.LastName = lastName.String
		m.Text = text.String
		m.ReplyTo = int(replyTo.Int64)
		m.RawJSON = rawJSON.String
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

// CountMessages returns the total number of stored messages.
func (r *Repository) CountMessages(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
