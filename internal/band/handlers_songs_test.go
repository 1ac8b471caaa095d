package band

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gorjanv/bandpractise/internal/ordering"
	"github.com/gorjanv/bandpractise/internal/rating"
)

func TestHandleHealth(t *testing.T) {
	rec := doRequest(newTestRouter(new(MockStore)), "GET", "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","service":"bandpractise"}`, rec.Body.String())
}

func TestHandleListSongs(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	songs := []Song{
		*testSong(songThree, userA, t0.Add(2*time.Hour)),
		*testSong(songTwo, userA, t0.Add(time.Hour)),
		*testSong(songOne, userA, t0),
	}
	rows := []rating.Row{
		{SongID: songOne, Rating: ptr(7)},
		{SongID: songOne, Rating: ptr(9)},
		{SongID: songThree, Rating: ptr(8)},
		{SongID: songThree, Rating: nil},
	}

	type item struct {
		ID            string  `json:"id"`
		AverageRating float64 `json:"averageRating"`
		TotalVotes    int     `json:"totalVotes"`
	}
	decode := func(t *testing.T, body []byte) []item {
		var out []item
		require.NoError(t, json.Unmarshal(body, &out))
		return out
	}

	t.Run("newest first", func(t *testing.T) {
		store := new(MockStore)
		store.On("ListSongs", mock.Anything).Return(songs, nil)
		store.On("ListRatings", mock.Anything).Return(rows, nil)

		rec := doRequest(newTestRouter(store), "GET", "/songs", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		out := decode(t, rec.Body.Bytes())
		assert.Equal(t, []item{
			{songThree, 8, 1},
			{songTwo, 0, 0},
			{songOne, 8, 2},
		}, out)
	})

	t.Run("by rating", func(t *testing.T) {
		store := new(MockStore)
		store.On("ListSongs", mock.Anything).Return(songs, nil)
		store.On("ListRatings", mock.Anything).Return(rows, nil)

		rec := doRequest(newTestRouter(store), "GET", "/songs?sort=rating", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		out := decode(t, rec.Body.Bytes())
		require.Len(t, out, 3)
		assert.Equal(t, []string{songThree, songOne, songTwo}, []string{out[0].ID, out[1].ID, out[2].ID})
	})

	t.Run("bad sort", func(t *testing.T) {
		rec := doRequest(newTestRouter(new(MockStore)), "GET", "/songs?sort=alpha", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ratings failure", func(t *testing.T) {
		store := new(MockStore)
		store.On("ListSongs", mock.Anything).Return(songs, nil)
		store.On("ListRatings", mock.Anything).Return(nil, errors.New("db down"))

		rec := doRequest(newTestRouter(store), "GET", "/songs", "", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
	})
}

func TestHandleGetSong(t *testing.T) {
	t.Run("with summary and versions", func(t *testing.T) {
		store := new(MockStore)
		store.On("GetSong", mock.Anything, songOne).Return(testSong(songOne, userA, time.Now()), nil)
		store.On("SongRatings", mock.Anything, songOne).Return([]*int{ptr(7), ptr(9), ptr(8), ptr(5)}, nil)
		store.On("ListVersions", mock.Anything, songOne).Return([]SongVersion{{ID: versionID, SongID: songOne}}, nil)

		rec := doRequest(newTestRouter(store), "GET", "/songs/"+songOne, "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var out SongView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, 7.3, out.AverageRating)
		assert.Equal(t, 4, out.TotalVotes)
		assert.Len(t, out.Versions, 1)
	})

	t.Run("not found", func(t *testing.T) {
		store := new(MockStore)
		store.On("GetSong", mock.Anything, songOne).Return(nil, errors.Wrap(ErrNotFound, "get song"))

		rec := doRequest(newTestRouter(store), "GET", "/songs/"+songOne, "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(newTestRouter(new(MockStore)), "GET", "/songs/not-a-uuid", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleCreateSong(t *testing.T) {
	t.Run("derives id and artwork", func(t *testing.T) {
		store := new(MockStore)
		store.On("CreateSong", mock.Anything, mock.MatchedBy(func(s *Song) bool {
			return s.YoutubeID == "dQw4w9WgXcQ" &&
				s.Artwork == "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" &&
				s.UserID != nil && *s.UserID == userA &&
				s.AddedBy == userA && s.AddedByName == "Jo"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Song).ID = songOne
		}).Return(nil)

		rec := doRequest(newTestRouter(store), "POST", "/songs",
			`{"title":"Song","artist":"Band","youtubeUrl":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`, userA)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var out SongView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, songOne, out.ID)
		store.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doRequest(newTestRouter(new(MockStore)), "POST", "/songs", `{"title":"Song"}`, userA)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not a youtube link", func(t *testing.T) {
		rec := doRequest(newTestRouter(new(MockStore)), "POST", "/songs",
			`{"title":"Song","artist":"Band","youtubeUrl":"https://vimeo.com/1"}`, userA)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := doRequest(newTestRouter(new(MockStore)), "POST", "/songs", `{}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandlePatchSong(t *testing.T) {
	t.Run("not owner", func(t *testing.T) {
		store := new(MockStore)
		store.On("GetSong", mock.Anything, songOne).Return(testSong(songOne, userA, time.Now()), nil)

		rec := doRequest(newTestRouter(store), "PATCH", "/songs/"+songOne, `{"title":"New"}`, userB)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assertNoCall(t, store, "UpdateSong")
	})

	t.Run("legacy owner via added_by", func(t *testing.T) {
		legacy := testSong(songOne, userA, time.Now())
		legacy.UserID = nil
		store := new(MockStore)
		store.On("GetSong", mock.Anything, songOne).Return(legacy, nil)
		store.On("UpdateSong", mock.Anything, songOne, mock.MatchedBy(func(u SongUpdate) bool {
			return u.YoutubeID != nil && *u.YoutubeID == "abcdefghijk" && u.Title == nil
		})).Return(legacy, nil)

		rec := doRequest(newTestRouter(store), "PATCH", "/songs/"+songOne,
			`{"youtubeUrl":"https://youtu.be/abcdefghijk"}`, userA)

		assert.Equal(t, http.StatusOK, rec.Code)
		store.AssertExpectations(t)
	})

	t.Run("empty title", func(t *testing.T) {
		rec := doRequest(newTestRouter(new(MockStore)), "PATCH", "/songs/"+songOne, `{"title":"  "}`, userA)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleDeleteSong(t *testing.T) {
	t.Run("compacts affected setlists", func(t *testing.T) {
		store := new(MockStore)
		store.On("GetSong", mock.Anything, songOne).Return(testSong(songOne, userA, time.Now()), nil)
		store.On("DeleteSong", mock.Anything, songOne).Return([]string{setlistID}, nil)
		store.On("SetlistEntries", mock.Anything, setlistID).Return([]ordering.Entry{
			{ID: "e2", MemberID: songTwo, Position: 0},
			{ID: "e3", MemberID: songThree, Position: 2},
		}, nil)
		moves := recordPositions(store, "SetSetlistSongPosition")
		store.On("TouchSetlist", mock.Anything, setlistID).Return(nil)

		rec := doRequest(newTestRouter(store), "DELETE", "/songs/"+songOne, "", userA)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"e3->1"}, *moves)
		store.AssertExpectations(t)
	})

	t.Run("not owner", func(t *testing.T) {
		store := new(MockStore)
		store.On("GetSong", mock.Anything, songOne).Return(testSong(songOne, userA, time.Now()), nil)

		rec := doRequest(newTestRouter(store), "DELETE", "/songs/"+songOne, "", userB)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assertNoCall(t, store, "DeleteSong")
	})

	t.Run("compaction failure is reported", func(t *testing.T) {
		store := new(MockStore)
		store.On("GetSong", mock.Anything, songOne).Return(testSong(songOne, userA, time.Now()), nil)
		store.On("DeleteSong", mock.Anything, songOne).Return([]string{setlistID}, nil)
		store.On("SetlistEntries", mock.Anything, setlistID).Return([]ordering.Entry{
			{ID: "e3", MemberID: songThree, Position: 1},
		}, nil)
		store.On("SetSetlistSongPosition", mock.Anything, "e3", 0).Return(errors.New("timeout"))

		rec := doRequest(newTestRouter(store), "DELETE", "/songs/"+songOne, "", userA)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"setlist update incomplete"}`, rec.Body.String())
	})
}

func TestHandleListSongVotes(t *testing.T) {
	store := new(MockStore)
	store.On("GetSong", mock.Anything, songOne).Return(testSong(songOne, userA, time.Now()), nil)
	store.On("ListVotes", mock.Anything, songOne).Return([]Vote{
		{ID: "v2", SongID: songOne, Rating: ptr(9), VoterName: "Sam"},
		{ID: "v1", SongID: songOne, Rating: ptr(6), Comment: ptr("too fast"), VoterName: "Unknown"},
	}, nil)

	rec := doRequest(newTestRouter(store), "GET", "/songs/"+songOne+"/votes", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out []Vote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "v2", out[0].ID)
	assert.Equal(t, "too fast", *out[1].Comment)
}
