// Package rating reduces per-user vote rows to the summary shown next to a song.
package rating

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	MinRating = 1
	MaxRating = 10
)

// ErrOutOfRange is returned by Normalize for ratings outside [MinRating, MaxRating].
var ErrOutOfRange = errors.New("rating must be a number between 1 and 10")

// Summary is the aggregate of all non-null ratings of one song.
type Summary struct {
	AverageRating float64 `json:"averageRating"`
	TotalVotes    int     `json:"totalVotes"`
}

// Row is one vote as read from the store. Rating is nil for legacy rows
// left over from the yes/no voting scheme.
type Row struct {
	SongID string
	Rating *int
}

// Summarize computes the summary of one song's ratings. Nil ratings are
// ignored for both the count and the sum.
func Summarize(ratings []*int) Summary {
	var sum, n int
	for _, r := range ratings {
		if r == nil {
			continue
		}
		sum += *r
		n++
	}
	if n == 0 {
		return Summary{}
	}
	return Summary{
		AverageRating: Round1(float64(sum) / float64(n)),
		TotalVotes:    n,
	}
}

// Group summarizes rows for many songs at once. Songs without any row are
// absent from the result; use Lookup to read it.
func Group(rows []Row) map[string]Summary {
	bySong := make(map[string][]*int)
	for _, row := range rows {
		bySong[row.SongID] = append(bySong[row.SongID], row.Rating)
	}
	out := make(map[string]Summary, len(bySong))
	for songID, ratings := range bySong {
		s := Summarize(ratings)
		if s.TotalVotes == 0 {
			continue
		}
		out[songID] = s
	}
	return out
}

// Lookup returns the summary for songID, or the zero Summary.
func Lookup(summaries map[string]Summary, songID string) Summary {
	return summaries[songID]
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Less reports whether a song with summary a, created at aCreated, ranks
// before one with summary b created at bCreated: higher average first, then
// newest first.
func Less(a, b Summary, aCreated, bCreated time.Time) bool {
	if a.AverageRating != b.AverageRating {
		return a.AverageRating > b.AverageRating
	}
	return aCreated.After(bCreated)
}

// Normalize validates a submitted rating and rounds it to an integer.
func Normalize(raw float64) (int, error) {
	if math.IsNaN(raw) || raw < MinRating || raw > MaxRating {
		return 0, ErrOutOfRange
	}
	return int(math.Round(raw)), nil
}
