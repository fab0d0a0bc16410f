package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"

	"jyotish/internal/profile/models"
	"jyotish/pkg/platform/sentinel"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	birth_date  TEXT NOT NULL,
	birth_time  TEXT NOT NULL,
	city        TEXT NOT NULL DEFAULT '',
	state       TEXT NOT NULL DEFAULT '',
	country     TEXT NOT NULL DEFAULT '',
	latitude    REAL NOT NULL,
	longitude   REAL NOT NULL,
	timezone    TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profiles_created_at ON profiles (created_at DESC);
`

// tsLayout is fixed-width so the TEXT columns sort chronologically;
// RFC3339Nano trims trailing zeros and breaks ORDER BY on sub-second
// timestamps.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite persists profiles in a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}
	// SQLite serializes writes; a single connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Create(ctx context.Context, p *models.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles
			(id, name, birth_date, birth_time, city, state, country,
			 latitude, longitude, timezone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Birth.Name, p.Birth.DateOfBirth, p.Birth.TimeOfBirth,
		p.Birth.City, p.Birth.State, p.Birth.Country,
		p.Birth.Latitude, p.Birth.Longitude, p.Birth.Timezone,
		p.CreatedAt.UTC().Format(tsLayout),
		p.UpdatedAt.UTC().Format(tsLayout),
	)
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, birth_date, birth_time, city, state, country,
		       latitude, longitude, timezone, created_at, updated_at
		FROM profiles WHERE id = ?`, id.String())
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select profile: %w", err)
	}
	return p, nil
}

func (s *SQLite) List(ctx context.Context, limit int) ([]*models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, birth_date, birth_time, city, state, country,
		       latitude, longitude, timezone, created_at, updated_at
		FROM profiles ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

func (s *SQLite) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *SQLite) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var (
		p                       models.Profile
		rawID, created, updated string
	)
	if err := row.Scan(
		&rawID, &p.Birth.Name, &p.Birth.DateOfBirth, &p.Birth.TimeOfBirth,
		&p.Birth.City, &p.Birth.State, &p.Birth.Country,
		&p.Birth.Latitude, &p.Birth.Longitude, &p.Birth.Timezone,
		&created, &updated,
	); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("parse profile id %q: %w", rawID, err)
	}
	p.ID = id
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}
