// Package ledger records which posts the bot has already replied to.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Ledger struct {
	db *sql.DB
}

// Entry is one recorded reply.
type Entry struct {
	PostID    string
	CommentID string
	RepliedAt time.Time
}

func Open(dbPath string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db}
	if err := l.init(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) init() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS replied (
			post_id    TEXT PRIMARY KEY,
			comment_id TEXT NOT NULL,
			replied_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// HasReplied reports whether a reply to postID was recorded.
func (l *Ledger) HasReplied(ctx context.Context, postID string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM replied WHERE post_id = ?", postID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking post %s: %w", postID, err)
	}
	return n > 0, nil
}

// MarkReplied records a reply. Recording the same post again keeps the newest comment.
func (l *Ledger) MarkReplied(ctx context.Context, postID, commentID string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO replied (post_id, comment_id, replied_at) VALUES (?, ?, ?)
		ON CONFLICT(post_id) DO UPDATE SET
			comment_id = excluded.comment_id,
			replied_at = excluded.replied_at
	`, postID, commentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recording reply to %s: %w", postID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		"SELECT post_id, comment_id, replied_at FROM replied ORDER BY replied_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("querying replies: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PostID, &e.CommentID, &e.RepliedAt); err != nil {
			return nil, fmt.Errorf("scanning reply: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
