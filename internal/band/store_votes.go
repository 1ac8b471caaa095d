package band

import (
	"context"

	"github.com/pkg/errors"

	"github.com/gorjanv/bandpractise/internal/rating"
)

// scanVote falls back to the legacy voter column for the display name.
const voteColumns = `id, song_id, COALESCE(user_id, ''), rating, comment,
	COALESCE(NULLIF(voter_name, ''), NULLIF(voter, ''), 'Unknown'), timestamp`

func scanVote(row scanner) (*Vote, error) {
	var v Vote
	if err := row.Scan(&v.ID, &v.SongID, &v.UserID, &v.Rating, &v.Comment, &v.VoterName, &v.Timestamp); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListRatings returns every vote row in one query; aggregation happens in
// rating.Group.
func (p *PostgresStore) ListRatings(ctx context.Context) ([]rating.Row, error) {
	rows, err := p.db.Query(ctx, `SELECT song_id, rating FROM votes`)
	if err != nil {
		return nil, errors.Wrap(err, "list ratings")
	}
	defer rows.Close()

	var out []rating.Row
	for rows.Next() {
		var r rating.Row
		if err := rows.Scan(&r.SongID, &r.Rating); err != nil {
			return nil, errors.Wrap(err, "scan rating")
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "list ratings")
}

func (p *PostgresStore) SongRatings(ctx context.Context, songID string) ([]*int, error) {
	rows, err := p.db.Query(ctx, `SELECT rating FROM votes WHERE song_id = $1`, songID)
	if err != nil {
		return nil, errors.Wrap(err, "song ratings")
	}
	defer rows.Close()

	var out []*int
	for rows.Next() {
		var r *int
		if err := rows.Scan(&r); err != nil {
			return nil, errors.Wrap(err, "scan rating")
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "song ratings")
}

// UpsertVote keeps one row per (song, user). Legacy voter/vote fields are
// cleared on every write.
func (p *PostgresStore) UpsertVote(ctx context.Context, v *Vote) error {
	err := p.db.QueryRow(ctx, `
		INSERT INTO votes(song_id, user_id, rating, comment, voter_name, voter, vote, timestamp)
		VALUES($1, $2, $3, $4, $5, NULL, NULL, now())
		ON CONFLICT (song_id, user_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			comment = EXCLUDED.comment,
			voter_name = EXCLUDED.voter_name,
			voter = NULL,
			vote = NULL,
			timestamp = EXCLUDED.timestamp
		RETURNING id, timestamp
	`, v.SongID, v.UserID, v.Rating, v.Comment, v.VoterName).Scan(&v.ID, &v.Timestamp)
	return mapErr(err, "upsert vote")
}

func (p *PostgresStore) ListVotes(ctx context.Context, songID string) ([]Vote, error) {
	rows, err := p.db.Query(ctx, `
		SELECT `+voteColumns+`
		FROM votes
		WHERE song_id = $1 AND rating IS NOT NULL
		ORDER BY timestamp DESC
	`, songID)
	if err != nil {
		return nil, errors.Wrap(err, "list votes")
	}
	defer rows.Close()

	out := []Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan vote")
		}
		out = append(out, *v)
	}
	return out, errors.Wrap(rows.Err(), "list votes")
}

func (p *PostgresStore) UserVotes(ctx context.Context, userID string) (map[string]UserVote, error) {
	rows, err := p.db.Query(ctx, `SELECT song_id, rating, comment FROM votes WHERE user_id = $1`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "user votes")
	}
	defer rows.Close()

	out := map[string]UserVote{}
	for rows.Next() {
		var songID string
		var uv UserVote
		if err := rows.Scan(&songID, &uv.Rating, &uv.Comment); err != nil {
			return nil, errors.Wrap(err, "scan user vote")
		}
		out[songID] = uv
	}
	return out, errors.Wrap(rows.Err(), "user votes")
}
