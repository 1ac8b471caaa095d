package band

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gorjanv/bandpractise/internal/ordering"
	"github.com/gorjanv/bandpractise/internal/rating"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListSongs(ctx context.Context) ([]Song, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Song), args.Error(1)
}

func (m *MockStore) GetSong(ctx context.Context, id string) (*Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Song), args.Error(1)
}

func (m *MockStore) CreateSong(ctx context.Context, song *Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockStore) UpdateSong(ctx context.Context, id string, upd SongUpdate) (*Song, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Song), args.Error(1)
}

func (m *MockStore) DeleteSong(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) ListRatings(ctx context.Context) ([]rating.Row, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rating.Row), args.Error(1)
}

func (m *MockStore) SongRatings(ctx context.Context, songID string) ([]*int, error) {
	args := m.Called(ctx, songID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*int), args.Error(1)
}

func (m *MockStore) UpsertVote(ctx context.Context, v *Vote) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockStore) ListVotes(ctx context.Context, songID string) ([]Vote, error) {
	args := m.Called(ctx, songID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Vote), args.Error(1)
}

func (m *MockStore) UserVotes(ctx context.Context, userID string) (map[string]UserVote, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]UserVote), args.Error(1)
}

func (m *MockStore) ListSetlists(ctx context.Context) ([]Setlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Setlist), args.Error(1)
}

func (m *MockStore) GetSetlist(ctx context.Context, id string) (*Setlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Setlist), args.Error(1)
}

func (m *MockStore) CreateSetlist(ctx context.Context, sl *Setlist) error {
	args := m.Called(ctx, sl)
	return args.Error(0)
}

func (m *MockStore) UpdateSetlist(ctx context.Context, id string, upd SetlistUpdate) (*Setlist, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Setlist), args.Error(1)
}

func (m *MockStore) DeleteSetlist(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) TouchSetlist(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ListSetlistSongs(ctx context.Context, setlistIDs []string) ([]SetlistSong, error) {
	args := m.Called(ctx, setlistIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SetlistSong), args.Error(1)
}

func (m *MockStore) SetlistEntries(ctx context.Context, setlistID string) ([]ordering.Entry, error) {
	args := m.Called(ctx, setlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Entry), args.Error(1)
}

func (m *MockStore) SetSetlistSongPosition(ctx context.Context, entryID string, position int) error {
	args := m.Called(ctx, entryID, position)
	return args.Error(0)
}

func (m *MockStore) DeleteSetlistSong(ctx context.Context, setlistID, songID string) error {
	args := m.Called(ctx, setlistID, songID)
	return args.Error(0)
}

func (m *MockStore) InsertSetlistSong(ctx context.Context, setlistID, songID string, position int) (*SetlistSong, error) {
	args := m.Called(ctx, setlistID, songID, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SetlistSong), args.Error(1)
}

func (m *MockStore) ListVersions(ctx context.Context, songID string) ([]SongVersion, error) {
	args := m.Called(ctx, songID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SongVersion), args.Error(1)
}

func (m *MockStore) VersionEntries(ctx context.Context, songID string) ([]ordering.Entry, error) {
	args := m.Called(ctx, songID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Entry), args.Error(1)
}

func (m *MockStore) SetVersionPosition(ctx context.Context, versionID string, position int) error {
	args := m.Called(ctx, versionID, position)
	return args.Error(0)
}

func (m *MockStore) DeleteVersion(ctx context.Context, songID, versionID string) error {
	args := m.Called(ctx, songID, versionID)
	return args.Error(0)
}

func (m *MockStore) InsertVersion(ctx context.Context, v *SongVersion) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
