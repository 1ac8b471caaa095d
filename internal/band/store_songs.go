package band

import (
	"context"

	"github.com/pkg/errors"
)

type scanner interface {
	Scan(dest ...any) error
}

const songColumns = `id, title, artist, artwork, youtube_url, youtube_id,
	user_id, added_by, added_by_name, added_at, created_at`

func scanSong(row scanner) (*Song, error) {
	var s Song
	err := row.Scan(
		&s.ID, &s.Title, &s.Artist, &s.Artwork, &s.YoutubeURL, &s.YoutubeID,
		&s.UserID, &s.AddedBy, &s.AddedByName, &s.AddedAt, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) ListSongs(ctx context.Context) ([]Song, error) {
	rows, err := p.db.Query(ctx, `SELECT `+songColumns+` FROM songs ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list songs")
	}
	defer rows.Close()

	out := []Song{}
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan song")
		}
		out = append(out, *s)
	}
	return out, errors.Wrap(rows.Err(), "list songs")
}

func (p *PostgresStore) GetSong(ctx context.Context, id string) (*Song, error) {
	s, err := scanSong(p.db.QueryRow(ctx, `SELECT `+songColumns+` FROM songs WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "get song")
	}
	return s, nil
}

func (p *PostgresStore) CreateSong(ctx context.Context, song *Song) error {
	err := p.db.QueryRow(ctx, `
		INSERT INTO songs(title, artist, artwork, youtube_url, youtube_id, user_id, added_by, added_by_name)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, added_at, created_at
	`, song.Title, song.Artist, song.Artwork, song.YoutubeURL, song.YoutubeID,
		song.UserID, song.AddedBy, song.AddedByName,
	).Scan(&song.ID, &song.AddedAt, &song.CreatedAt)
	return mapErr(err, "create song")
}

func (p *PostgresStore) UpdateSong(ctx context.Context, id string, upd SongUpdate) (*Song, error) {
	s, err := scanSong(p.db.QueryRow(ctx, `
		UPDATE songs SET
			title = COALESCE($2, title),
			artist = COALESCE($3, artist),
			artwork = COALESCE($4, artwork),
			youtube_url = COALESCE($5, youtube_url),
			youtube_id = COALESCE($6, youtube_id)
		WHERE id = $1
		RETURNING `+songColumns,
		id, upd.Title, upd.Artist, upd.Artwork, upd.YoutubeURL, upd.YoutubeID,
	))
	if err != nil {
		return nil, mapErr(err, "update song")
	}
	return s, nil
}

func (p *PostgresStore) DeleteSong(ctx context.Context, id string) ([]string, error) {
	rows, err := p.db.Query(ctx, `SELECT DISTINCT setlist_id FROM setlist_songs WHERE song_id = $1`, id)
	if err != nil {
		return nil, errors.Wrap(err, "affected setlists")
	}
	var setlists []string
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scan setlist id")
		}
		setlists = append(setlists, sid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "affected setlists")
	}

	tag, err := p.db.Exec(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return nil, mapErr(err, "delete song")
	}
	if err := requireAffected(tag, "delete song"); err != nil {
		return nil, err
	}
	return setlists, nil
}
