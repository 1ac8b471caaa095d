package band

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/gorjanv/bandpractise/internal/ordering"
	"github.com/gorjanv/bandpractise/internal/rating"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflicting row already exists")
)

// DB is implemented by *pgxpool.Pool and by pgxmock pools in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store interface {
	// Songs
	ListSongs(ctx context.Context) ([]Song, error)
	GetSong(ctx context.Context, id string) (*Song, error)
	CreateSong(ctx context.Context, song *Song) error
	UpdateSong(ctx context.Context, id string, upd SongUpdate) (*Song, error)
	// DeleteSong returns the setlists that contained the song.
	DeleteSong(ctx context.Context, id string) ([]string, error)

	// Votes
	ListRatings(ctx context.Context) ([]rating.Row, error)
	SongRatings(ctx context.Context, songID string) ([]*int, error)
	UpsertVote(ctx context.Context, v *Vote) error
	ListVotes(ctx context.Context, songID string) ([]Vote, error)
	UserVotes(ctx context.Context, userID string) (map[string]UserVote, error)

	// Setlists
	ListSetlists(ctx context.Context) ([]Setlist, error)
	GetSetlist(ctx context.Context, id string) (*Setlist, error)
	CreateSetlist(ctx context.Context, sl *Setlist) error
	UpdateSetlist(ctx context.Context, id string, upd SetlistUpdate) (*Setlist, error)
	DeleteSetlist(ctx context.Context, id string) error
	TouchSetlist(ctx context.Context, id string) error
	ListSetlistSongs(ctx context.Context, setlistIDs []string) ([]SetlistSong, error)

	// Setlist positions
	SetlistEntries(ctx context.Context, setlistID string) ([]ordering.Entry, error)
	SetSetlistSongPosition(ctx context.Context, entryID string, position int) error
	DeleteSetlistSong(ctx context.Context, setlistID, songID string) error
	InsertSetlistSong(ctx context.Context, setlistID, songID string, position int) (*SetlistSong, error)

	// Versions
	ListVersions(ctx context.Context, songID string) ([]SongVersion, error)
	VersionEntries(ctx context.Context, songID string) ([]ordering.Entry, error)
	SetVersionPosition(ctx context.Context, versionID string, position int) error
	DeleteVersion(ctx context.Context, songID, versionID string) error
	InsertVersion(ctx context.Context, v *SongVersion) error
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// mapErr turns driver errors into the package's sentinels.
func mapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrap(ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return errors.Wrapf(ErrConflict, "%s: %s", what, pgErr.ConstraintName)
		case "23503":
			return errors.Wrap(ErrNotFound, what)
		}
	}
	return errors.Wrap(err, what)
}

func collectEntries(rows pgx.Rows) ([]ordering.Entry, error) {
	defer rows.Close()
	var out []ordering.Entry
	for rows.Next() {
		var e ordering.Entry
		if err := rows.Scan(&e.ID, &e.MemberID, &e.Position); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func requireAffected(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return errors.Wrap(ErrNotFound, what)
	}
	return nil
}
