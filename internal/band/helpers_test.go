package band

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gorjanv/bandpractise/internal/auth"
	"github.com/gorjanv/bandpractise/internal/rating"
)

const (
	userA = "user-a"
	userB = "user-b"

	songOne   = "11111111-1111-1111-1111-111111111111"
	songTwo   = "22222222-2222-2222-2222-222222222222"
	songThree = "33333333-3333-3333-3333-333333333333"
	songFour  = "44444444-4444-4444-4444-444444444444"
	setlistID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	versionID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

func newTestRouter(store Store) http.Handler {
	return NewServer(store, nil).Router(auth.Middleware(auth.Options{TrustHeaders: true}))
}

func doRequest(h http.Handler, method, path, body, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
		req.Header.Set("X-User-Name", "Jo")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func ptr[T any](v T) *T { return &v }

func testSong(id, owner string, created time.Time) *Song {
	return &Song{
		ID:         id,
		Title:      "Song " + id[:4],
		Artist:     "Band",
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
		YoutubeID:  "dQw4w9WgXcQ",
		UserID:     ptr(owner),
		AddedBy:    owner,
		CreatedAt:  created,
	}
}

func testSetlist(owner string) *Setlist {
	return &Setlist{
		ID:            setlistID,
		Name:          ptr("Friday"),
		RehearsalDate: "2026-10-23",
		UserID:        owner,
		Songs:         []SetlistSong{},
	}
}

// recordPositions captures position writes in call order as "entry->pos".
func recordPositions(m *MockStore, method string) *[]string {
	var moves []string
	m.On(method, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			moves = append(moves, fmt.Sprintf("%s->%d", args.String(1), args.Int(2)))
		}).
		Return(nil)
	return &moves
}

// expectSetlistRead covers the response body written after a setlist mutation.
func expectSetlistRead(m *MockStore, owner string) {
	m.On("GetSetlist", mock.Anything, setlistID).Return(testSetlist(owner), nil)
	m.On("ListSetlistSongs", mock.Anything, []string{setlistID}).Return([]SetlistSong{}, nil)
	m.On("ListRatings", mock.Anything).Return([]rating.Row{}, nil)
}

func assertNoCall(t *testing.T, m *MockStore, method string) {
	t.Helper()
	for _, c := range m.Calls {
		if c.Method == method {
			t.Fatalf("unexpected call to %s", method)
		}
	}
}
