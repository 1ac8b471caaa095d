package band

import (
	"context"

	"github.com/gorjanv/bandpractise/internal/ordering"
)

// setlistCollection exposes setlist_songs rows to the ordering manager.
// Members are song ids.
type setlistCollection struct {
	store Store
}

func (c setlistCollection) Entries(ctx context.Context, setlistID string) ([]ordering.Entry, error) {
	return c.store.SetlistEntries(ctx, setlistID)
}

func (c setlistCollection) SetPosition(ctx context.Context, entryID string, position int) error {
	return c.store.SetSetlistSongPosition(ctx, entryID, position)
}

func (c setlistCollection) Delete(ctx context.Context, setlistID, songID string) error {
	return c.store.DeleteSetlistSong(ctx, setlistID, songID)
}

// versionCollection exposes song_versions rows. Members are version ids.
type versionCollection struct {
	store Store
}

func (c versionCollection) Entries(ctx context.Context, songID string) ([]ordering.Entry, error) {
	return c.store.VersionEntries(ctx, songID)
}

func (c versionCollection) SetPosition(ctx context.Context, versionID string, position int) error {
	return c.store.SetVersionPosition(ctx, versionID, position)
}

func (c versionCollection) Delete(ctx context.Context, songID, versionID string) error {
	return c.store.DeleteVersion(ctx, songID, versionID)
}
