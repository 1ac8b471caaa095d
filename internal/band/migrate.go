package band

import (
	"context"
	"log"
)

func AutoMigrate(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS pgcrypto`); err != nil {
		log.Printf("bandpractise: migrate pgcrypto: %v", err)
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS songs(
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			artwork TEXT NOT NULL DEFAULT '',
			youtube_url TEXT NOT NULL,
			youtube_id TEXT NOT NULL,
			user_id TEXT,
			added_by TEXT NOT NULL DEFAULT '',
			added_by_name TEXT NOT NULL DEFAULT '',
			added_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS song_versions(
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			song_id uuid NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			youtube_url TEXT NOT NULL,
			youtube_id TEXT NOT NULL,
			performer TEXT,
			position INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE(song_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS votes(
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			song_id uuid NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			user_id TEXT,
			rating INT CHECK (rating BETWEEN 1 AND 10),
			comment TEXT,
			voter_name TEXT,
			voter TEXT,
			vote TEXT,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE(song_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS setlists(
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT,
			rehearsal_date DATE NOT NULL,
			user_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS setlist_songs(
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			setlist_id uuid NOT NULL REFERENCES setlists(id) ON DELETE CASCADE,
			song_id uuid NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			position INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE(setlist_id, position),
			UNIQUE(setlist_id, song_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_song ON votes(song_id)`,
		`CREATE INDEX IF NOT EXISTS idx_setlist_songs_song ON setlist_songs(song_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			log.Printf("bandpractise: migrate: %v", err)
			return err
		}
	}
	return nil
}
