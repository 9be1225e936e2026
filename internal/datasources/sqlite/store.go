// Package sqlite is the client-local durable store: the persisted
// session record, snapshots of fetched feed pages, and the per-topic
// cursor history backing restart-safe back-navigation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huandu/go-sqlbuilder"
	_ "modernc.org/sqlite"

	"github.com/strawberrySword/hermes/internal/datasources"
	"github.com/strawberrySword/hermes/internal/domain"
)

var _ datasources.LocalStore = (*Store)(nil)

// Store is an embedded sqlite database. Writes go through a single
// connection; reads use a separate read-only handle.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	_, err := s.writeDB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session (
			id      INTEGER PRIMARY KEY CHECK (id = 1),
			user_id TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS articles (
			key       TEXT NOT NULL,
			topic     TEXT NOT NULL,
			id        TEXT NOT NULL DEFAULT '',
			title     TEXT NOT NULL,
			url       TEXT NOT NULL,
			image     TEXT NOT NULL DEFAULT '',
			publisher TEXT NOT NULL DEFAULT '',
			date      TEXT NOT NULL DEFAULT '',
			keyword   TEXT NOT NULL DEFAULT '',
			genre     TEXT NOT NULL DEFAULT '',
			subtitle  TEXT NOT NULL DEFAULT '',
			position  INTEGER NOT NULL,
			PRIMARY KEY (topic, key)
		);
		CREATE INDEX IF NOT EXISTS idx_articles_topic_position
			ON articles(topic, position);

		CREATE TABLE IF NOT EXISTS cursors (
			topic  TEXT NOT NULL,
			seq    INTEGER NOT NULL,
			cursor TEXT NOT NULL,
			PRIMARY KEY (topic, seq)
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	return errors.Join(errs...)
}

// LoadSession returns the persisted user record, or nil when logged out.
func (s *Store) LoadSession(ctx context.Context) (*domain.User, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("user_id").From("session").Where(sb.Equal("id", 1))

	query, args := sb.Build()
	var userID string
	err := s.readDB.QueryRowContext(ctx, query, args...).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return &domain.User{UserID: userID}, nil
}

func (s *Store) SaveSession(ctx context.Context, user domain.User) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.ReplaceInto("session").Cols("id", "user_id").Values(1, user.UserID)

	query, args := ib.Build()
	if _, err := s.writeDB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	db := sqlbuilder.SQLite.NewDeleteBuilder()
	db.DeleteFrom("session").Where(db.Equal("id", 1))

	query, args := db.Build()
	if _, err := s.writeDB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// SaveArticles appends a fetched page to the topic's snapshot,
// preserving fetch order. Re-fetched articles keep one row per topic.
func (s *Store) SaveArticles(ctx context.Context, topic string, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := s.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var base sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		"SELECT MAX(position) FROM articles WHERE topic = ?", topic,
	).Scan(&base); err != nil {
		return fmt.Errorf("reading snapshot position: %w", err)
	}

	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.ReplaceInto("articles").Cols(
		"key", "topic", "id", "title", "url", "image",
		"publisher", "date", "keyword", "genre", "subtitle", "position",
	)
	for i, a := range articles {
		ib.Values(
			a.Key(), topic, a.ID, a.Title, a.URL, a.Image,
			a.Publisher, a.Date.Format(time.RFC3339), a.Keyword, a.Genre, a.Subtitle,
			base.Int64+int64(i)+1,
		)
	}

	query, args := ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving article snapshot: %w", err)
	}
	return tx.Commit()
}

// ListArticles returns the snapshotted articles for a topic in fetch
// order. limit <= 0 means no limit.
func (s *Store) ListArticles(ctx context.Context, topic string, limit int) ([]domain.Article, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(
		"id", "title", "url", "image", "publisher",
		"date", "keyword", "genre", "subtitle",
	).From("articles").Where(sb.Equal("topic", topic)).OrderBy("position")
	if limit > 0 {
		sb.Limit(limit)
	}

	query, args := sb.Build()
	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing article snapshot: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		var date string
		if err := rows.Scan(
			&a.ID, &a.Title, &a.URL, &a.Image, &a.Publisher,
			&date, &a.Keyword, &a.Genre, &a.Subtitle,
		); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		a.Topic = topic
		a.Date, _ = time.Parse(time.RFC3339, date)
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// SaveCursor appends a seen cursor to the topic's history. Saving a
// cursor already in the history is a no-op.
func (s *Store) SaveCursor(ctx context.Context, topic, cursor string) error {
	tx, err := s.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cursors WHERE topic = ? AND cursor = ?", topic, cursor,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking cursor history: %w", err)
	}
	if exists > 0 {
		return tx.Commit()
	}

	var base sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		"SELECT MAX(seq) FROM cursors WHERE topic = ?", topic,
	).Scan(&base); err != nil {
		return fmt.Errorf("reading cursor history position: %w", err)
	}

	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertInto("cursors").Cols("topic", "seq", "cursor").
		Values(topic, base.Int64+1, cursor)

	query, args := ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving cursor: %w", err)
	}
	return tx.Commit()
}

// ListCursors returns the topic's seen cursors in fetch order.
func (s *Store) ListCursors(ctx context.Context, topic string) ([]string, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("cursor").From("cursors").Where(sb.Equal("topic", topic)).OrderBy("seq")

	query, args := sb.Build()
	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cursor history: %w", err)
	}
	defer rows.Close()

	var cursors []string
	for rows.Next() {
		var cursor string
		if err := rows.Scan(&cursor); err != nil {
			return nil, fmt.Errorf("scanning cursor: %w", err)
		}
		cursors = append(cursors, cursor)
	}
	return cursors, rows.Err()
}
