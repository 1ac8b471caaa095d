package band

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gorjanv/bandpractise/internal/ordering"
)

func scanVersion(row scanner) (*SongVersion, error) {
	var v SongVersion
	if err := row.Scan(&v.ID, &v.SongID, &v.YoutubeURL, &v.YoutubeID, &v.Performer, &v.Position, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (p *PostgresStore) ListVersions(ctx context.Context, songID string) ([]SongVersion, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, song_id, youtube_url, youtube_id, performer, position, created_at
		FROM song_versions
		WHERE song_id = $1
		ORDER BY position ASC
	`, songID)
	if err != nil {
		return nil, errors.Wrap(err, "list versions")
	}
	defer rows.Close()

	var out []SongVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan version")
		}
		out = append(out, *v)
	}
	return out, errors.Wrap(rows.Err(), "list versions")
}

// VersionEntries uses the version id as the member id.
func (p *PostgresStore) VersionEntries(ctx context.Context, songID string) ([]ordering.Entry, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, id, position
		FROM song_versions
		WHERE song_id = $1
		ORDER BY position ASC
	`, songID)
	if err != nil {
		return nil, errors.Wrap(err, "version entries")
	}
	entries, err := collectEntries(rows)
	return entries, errors.Wrap(err, "version entries")
}

func (p *PostgresStore) SetVersionPosition(ctx context.Context, versionID string, position int) error {
	tag, err := p.db.Exec(ctx, `UPDATE song_versions SET position = $2 WHERE id = $1`, versionID, position)
	if err != nil {
		return mapErr(err, "set version position")
	}
	return requireAffected(tag, "set version position")
}

func (p *PostgresStore) DeleteVersion(ctx context.Context, songID, versionID string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM song_versions WHERE song_id = $1 AND id = $2`, songID, versionID)
	return mapErr(err, "delete version")
}

func (p *PostgresStore) InsertVersion(ctx context.Context, v *SongVersion) error {
	err := p.db.QueryRow(ctx, `
		INSERT INTO song_versions(song_id, youtube_url, youtube_id, performer, position)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, v.SongID, v.YoutubeURL, v.YoutubeID, v.Performer, v.Position).Scan(&v.ID, &v.CreatedAt)
	return mapErr(err, "insert version")
}
