// Package generator produces synthetic research-participation fixtures.
//
// Each entity has its own generator type constructed from a config options
// struct plus any reference pools the caller loaded from sibling files.
// Generators own a seeded random source, so two runs with the same seed and
// the same pools emit identical rows. Missing pools are synthesized on the
// fly from the same random stream.
package generator

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrTargetMissed is returned in strict mode when the unique-pair
	// budget runs out before the requested row count is reached.
	ErrTargetMissed = errors.New("could not reach requested row count")

	// ErrPlacementFailed is returned in strict mode when a session cannot
	// be scheduled without overlapping its room's existing bookings.
	ErrPlacementFailed = errors.New("could not place session without room overlap")

	// ErrNoParticipants is returned when consent signing is requested
	// against an empty participant pool.
	ErrNoParticipants = errors.New("no participants to sign consents")

	// ErrNoUsableVersions is returned when every loaded consent version is
	// unparseable or only becomes effective after the reference date.
	ErrNoUsableVersions = errors.New("no usable consent versions")
)

// pair keys composite identities such as (participant, session).
type pair struct {
	a, b string
}

// dayStart returns midnight of t's calendar day in UTC.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayEnd returns 23:59:59 of t's calendar day in UTC.
func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// newID draws a v4 UUID from the seeded stream so identical seeds
// reproduce identical ids.
func newID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// synthIDs fabricates a pool of n ids for runs without reference files.
func synthIDs(rng *rand.Rand, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = newID(rng)
	}
	return ids
}

// titleCase uppercases the first letter of every word and lowercases the
// rest, treating any non-letter as a word boundary.
func titleCase(s string) string {
	out := []rune(s)
	prevLetter := false
	for i, r := range out {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			if r >= 'a' && r <= 'z' {
				out[i] = r - 'a' + 'A'
			}
		case isLetter:
			if r >= 'A' && r <= 'Z' {
				out[i] = r - 'A' + 'a'
			}
		}
		prevLetter = isLetter
	}
	return string(out)
}

// sentenceCase uppercases only the first letter.
func sentenceCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - 'a' + 'A'
	}
	return string(r)
}
