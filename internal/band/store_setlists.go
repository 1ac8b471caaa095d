package band

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gorjanv/bandpractise/internal/ordering"
)

const setlistColumns = `id, name, to_char(rehearsal_date, 'YYYY-MM-DD'), user_id, created_at, updated_at`

func scanSetlist(row scanner) (*Setlist, error) {
	var sl Setlist
	if err := row.Scan(&sl.ID, &sl.Name, &sl.RehearsalDate, &sl.UserID, &sl.CreatedAt, &sl.UpdatedAt); err != nil {
		return nil, err
	}
	sl.Songs = []SetlistSong{}
	return &sl, nil
}

// scanSetlistSong reads a setlist_songs row joined with its song.
func scanSetlistSong(row scanner) (*SetlistSong, error) {
	var ss SetlistSong
	var s Song
	err := row.Scan(
		&ss.ID, &ss.SetlistID, &ss.SongID, &ss.Position, &ss.CreatedAt,
		&s.ID, &s.Title, &s.Artist, &s.Artwork, &s.YoutubeURL, &s.YoutubeID,
		&s.UserID, &s.AddedBy, &s.AddedByName, &s.AddedAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	ss.Song = &SongView{Song: s}
	return &ss, nil
}

func (p *PostgresStore) ListSetlists(ctx context.Context) ([]Setlist, error) {
	rows, err := p.db.Query(ctx, `
		SELECT `+setlistColumns+`
		FROM setlists
		ORDER BY rehearsal_date DESC, created_at DESC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "list setlists")
	}
	defer rows.Close()

	out := []Setlist{}
	for rows.Next() {
		sl, err := scanSetlist(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan setlist")
		}
		out = append(out, *sl)
	}
	return out, errors.Wrap(rows.Err(), "list setlists")
}

func (p *PostgresStore) GetSetlist(ctx context.Context, id string) (*Setlist, error) {
	sl, err := scanSetlist(p.db.QueryRow(ctx, `SELECT `+setlistColumns+` FROM setlists WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "get setlist")
	}
	return sl, nil
}

func (p *PostgresStore) CreateSetlist(ctx context.Context, sl *Setlist) error {
	err := p.db.QueryRow(ctx, `
		INSERT INTO setlists(name, rehearsal_date, user_id)
		VALUES($1, $2::date, $3)
		RETURNING id, created_at, updated_at
	`, sl.Name, sl.RehearsalDate, sl.UserID).Scan(&sl.ID, &sl.CreatedAt, &sl.UpdatedAt)
	if sl.Songs == nil {
		sl.Songs = []SetlistSong{}
	}
	return mapErr(err, "create setlist")
}

func (p *PostgresStore) UpdateSetlist(ctx context.Context, id string, upd SetlistUpdate) (*Setlist, error) {
	sl, err := scanSetlist(p.db.QueryRow(ctx, `
		UPDATE setlists SET
			name = COALESCE($2, name),
			rehearsal_date = COALESCE($3::date, rehearsal_date),
			updated_at = now()
		WHERE id = $1
		RETURNING `+setlistColumns,
		id, upd.Name, upd.RehearsalDate,
	))
	if err != nil {
		return nil, mapErr(err, "update setlist")
	}
	return sl, nil
}

func (p *PostgresStore) DeleteSetlist(ctx context.Context, id string) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM setlists WHERE id = $1`, id)
	if err != nil {
		return mapErr(err, "delete setlist")
	}
	return requireAffected(tag, "delete setlist")
}

func (p *PostgresStore) TouchSetlist(ctx context.Context, id string) error {
	_, err := p.db.Exec(ctx, `UPDATE setlists SET updated_at = now() WHERE id = $1`, id)
	return mapErr(err, "touch setlist")
}

func (p *PostgresStore) ListSetlistSongs(ctx context.Context, setlistIDs []string) ([]SetlistSong, error) {
	if len(setlistIDs) == 0 {
		return nil, nil
	}
	rows, err := p.db.Query(ctx, `
		SELECT ss.id, ss.setlist_id, ss.song_id, ss.position, ss.created_at,
			s.id, s.title, s.artist, s.artwork, s.youtube_url, s.youtube_id,
			s.user_id, s.added_by, s.added_by_name, s.added_at, s.created_at
		FROM setlist_songs ss
		JOIN songs s ON s.id = ss.song_id
		WHERE ss.setlist_id = ANY($1::uuid[])
		ORDER BY ss.setlist_id, ss.position ASC
	`, setlistIDs)
	if err != nil {
		return nil, errors.Wrap(err, "list setlist songs")
	}
	defer rows.Close()

	var out []SetlistSong
	for rows.Next() {
		ss, err := scanSetlistSong(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan setlist song")
		}
		out = append(out, *ss)
	}
	return out, errors.Wrap(rows.Err(), "list setlist songs")
}

func (p *PostgresStore) SetlistEntries(ctx context.Context, setlistID string) ([]ordering.Entry, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, song_id, position
		FROM setlist_songs
		WHERE setlist_id = $1
		ORDER BY position ASC
	`, setlistID)
	if err != nil {
		return nil, errors.Wrap(err, "setlist entries")
	}
	entries, err := collectEntries(rows)
	return entries, errors.Wrap(err, "setlist entries")
}

func (p *PostgresStore) SetSetlistSongPosition(ctx context.Context, entryID string, position int) error {
	tag, err := p.db.Exec(ctx, `UPDATE setlist_songs SET position = $2 WHERE id = $1`, entryID, position)
	if err != nil {
		return mapErr(err, "set setlist position")
	}
	return requireAffected(tag, "set setlist position")
}

func (p *PostgresStore) DeleteSetlistSong(ctx context.Context, setlistID, songID string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM setlist_songs WHERE setlist_id = $1 AND song_id = $2`, setlistID, songID)
	return mapErr(err, "delete setlist song")
}

func (p *PostgresStore) InsertSetlistSong(ctx context.Context, setlistID, songID string, position int) (*SetlistSong, error) {
	ss := SetlistSong{SetlistID: setlistID, SongID: songID, Position: position}
	err := p.db.QueryRow(ctx, `
		INSERT INTO setlist_songs(setlist_id, song_id, position)
		VALUES($1, $2, $3)
		RETURNING id, created_at
	`, setlistID, songID, position).Scan(&ss.ID, &ss.CreatedAt)
	if err != nil {
		return nil, mapErr(err, "insert setlist song")
	}
	return &ss, nil
}
