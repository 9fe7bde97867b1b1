package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/forgeplanner/internal/model"
)

// MaxRevisions is the number of past saves kept per profile.
const MaxRevisions = 20

// ErrProfileNotFound is returned when no profile has the requested name.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRecord is a stored profile.
type ProfileRecord struct {
	ID        uuid.UUID
	Name      string
	Version   string // library version the profile was last edited against
	Profile   model.Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileSummary is a listing row without the profile body.
type ProfileSummary struct {
	ID        uuid.UUID
	Name      string
	Version   string
	UpdatedAt time.Time
}

// Revision is one past save of a profile.
type Revision struct {
	ID      int64
	Profile model.Profile
	SavedAt time.Time
}

// ProfileRepository stores profiles as JSONB documents.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Load returns the profile stored under name.
func (r *ProfileRepository) Load(ctx context.Context, name string) (ProfileRecord, error) {
	var (
		rec ProfileRecord
		raw []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT profile_id, name, version, data, created_at, updated_at
		 FROM profiles WHERE name = $1`, name,
	).Scan(&rec.ID, &rec.Name, &rec.Version, &raw, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ProfileRecord{}, fmt.Errorf("loading profile %q: %w", name, ErrProfileNotFound)
	}
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("querying profile %q: %w", name, err)
	}
	if err := sonic.Unmarshal(raw, &rec.Profile); err != nil {
		return ProfileRecord{}, fmt.Errorf("decoding profile %q: %w", name, err)
	}
	return rec, nil
}

// Save upserts the profile under p.Name and records a revision, trimming
// revisions beyond MaxRevisions.
func (r *ProfileRepository) Save(ctx context.Context, p model.Profile, version string) (ProfileRecord, error) {
	if p.Name == "" {
		return ProfileRecord{}, errors.New("saving profile: empty name")
	}
	raw, err := sonic.Marshal(p)
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("encoding profile %q: %w", p.Name, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("begin transaction for profile %q: %w", p.Name, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "profile", p.Name, "error", err)
		}
	}()

	rec := ProfileRecord{Name: p.Name, Version: version, Profile: p.Clone()}
	err = tx.QueryRow(ctx,
		`INSERT INTO profiles (profile_id, name, version, data)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE
		 SET version = EXCLUDED.version, data = EXCLUDED.data, updated_at = now()
		 RETURNING profile_id, created_at, updated_at`,
		uuid.New(), p.Name, version, raw,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("upserting profile %q: %w", p.Name, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO profile_revisions (profile_id, data) VALUES ($1, $2)`,
		rec.ID, raw,
	); err != nil {
		return ProfileRecord{}, fmt.Errorf("recording revision of profile %q: %w", p.Name, err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM profile_revisions
		 WHERE profile_id = $1 AND revision_id NOT IN (
		     SELECT revision_id FROM profile_revisions
		     WHERE profile_id = $1
		     ORDER BY revision_id DESC
		     LIMIT $2)`,
		rec.ID, MaxRevisions,
	); err != nil {
		return ProfileRecord{}, fmt.Errorf("trimming revisions of profile %q: %w", p.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return ProfileRecord{}, fmt.Errorf("commit transaction for profile %q: %w", p.Name, err)
	}

	slog.Info("profile saved", "profile", p.Name, "id", rec.ID, "version", version)
	return rec, nil
}

// List returns every stored profile, by name.
func (r *ProfileRepository) List(ctx context.Context) ([]ProfileSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT profile_id, name, version, updated_at FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var out []ProfileSummary
	for rows.Next() {
		var s ProfileSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Version, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile rows: %w", err)
	}
	return out, nil
}

// Revisions returns the stored revisions of a profile, newest first.
func (r *ProfileRepository) Revisions(ctx context.Context, name string) ([]Revision, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rv.revision_id, rv.data, rv.saved_at
		 FROM profile_revisions rv
		 JOIN profiles p ON p.profile_id = rv.profile_id
		 WHERE p.name = $1
		 ORDER BY rv.revision_id DESC`, name)
	if err != nil {
		return nil, fmt.Errorf("querying revisions of profile %q: %w", name, err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var (
			rev Revision
			raw []byte
		)
		if err := rows.Scan(&rev.ID, &raw, &rev.SavedAt); err != nil {
			return nil, fmt.Errorf("scanning revision row: %w", err)
		}
		if err := sonic.Unmarshal(raw, &rev.Profile); err != nil {
			return nil, fmt.Errorf("decoding revision %d: %w", rev.ID, err)
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revision rows: %w", err)
	}
	return out, nil
}

// Delete removes a profile and its revisions.
func (r *ProfileRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting profile %q: %w", name, ErrProfileNotFound)
	}
	slog.Info("profile deleted", "profile", name)
	return nil
}
