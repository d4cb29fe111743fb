package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
	"github.com/studyflow/fixturegen/internal/refdata"
	"github.com/studyflow/fixturegen/internal/sampling"
)

const (
	sessionDaysPast   = 10
	sessionDaysFuture = 60

	sessionStartHourMin = 8
	sessionStartHourMax = 19

	sessionDurationMin = 45
	sessionDurationMax = 120

	fallbackRoomCapMin = 18
	fallbackRoomCapMax = 60
)

var sessionStartMinutes = []int{0, 15, 30, 45}

type interval struct {
	start, end time.Time
}

// SessionGenerator schedules study sessions into rooms, avoiding overlaps
// within a room on a best-effort basis.
type SessionGenerator struct {
	opts    config.SessionOptions
	studies []string
	rooms   []refdata.RoomRef
	rng     *rand.Rand
	logger  zerolog.Logger
}

// NewSessionGenerator seeds a generator from opts. Either pool may be nil to
// synthesize one.
func NewSessionGenerator(opts config.SessionOptions, studies []string, rooms []refdata.RoomRef, logger zerolog.Logger) *SessionGenerator {
	return &SessionGenerator{
		opts:    opts,
		studies: studies,
		rooms:   rooms,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		logger:  logger.With().Str("component", "session_generator").Logger(),
	}
}

// Generate produces opts.Count session rows. When every placement retry for
// a candidate overlaps, the overlapping slot is accepted unless strict mode
// turns it into an error.
func (g *SessionGenerator) Generate(ctx context.Context) ([]models.Session, error) {
	studies := g.studies
	if len(studies) == 0 {
		studies = synthIDs(g.rng, g.opts.StudyPool)
		g.logger.Info().Int("pool", len(studies)).Msg("synthesized study pool")
	}
	rooms := g.rooms
	if len(rooms) == 0 {
		rooms = g.synthRooms(g.opts.RoomPool)
		g.logger.Info().Int("pool", len(rooms)).Msg("synthesized room pool")
	}

	schedules := make(map[string][]interval)
	rows := make([]models.Session, 0, g.opts.Count)
	for i := 0; i < g.opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		studyID := sampling.Pick(g.rng, studies)
		room := sampling.Pick(g.rng, rooms)

		slot, ok := g.place(schedules[room.ID])
		if !ok && g.opts.Strict {
			return nil, fmt.Errorf("%w: room %s after %d attempts", ErrPlacementFailed, room.ID, g.opts.PlacementRetries)
		}
		schedules[room.ID] = append(schedules[room.ID], slot)

		rows = append(rows, models.Session{
			StudyID:  studyID,
			RoomID:   room.ID,
			StartTs:  models.NewTimestamp(slot.start),
			EndTs:    models.NewTimestamp(slot.end),
			Capacity: g.capacity(room),
		})
	}
	g.logger.Info().Int("rows", len(rows)).Int("rooms", len(rooms)).Msg("sessions generated")
	return rows, nil
}

// place tries PlacementRetries random slots against the room's existing
// bookings and returns the first non-overlapping one, or the last candidate
// with ok=false when all attempts collide.
func (g *SessionGenerator) place(existing []interval) (interval, bool) {
	var slot interval
	for attempt := 0; attempt < g.opts.PlacementRetries; attempt++ {
		start := g.randomStart()
		end := start.Add(time.Duration(sampling.IntBetween(g.rng, sessionDurationMin, sessionDurationMax)) * time.Minute)
		slot = interval{start, end}
		if !overlapsAny(existing, slot) {
			return slot, true
		}
	}
	return slot, false
}

func (g *SessionGenerator) randomStart() time.Time {
	day := sampling.IntBetween(g.rng, -sessionDaysPast, sessionDaysFuture)
	hour := sampling.IntBetween(g.rng, sessionStartHourMin, sessionStartHourMax)
	minute := sampling.Pick(g.rng, sessionStartMinutes)
	return dayStart(g.opts.ReferenceDate).
		AddDate(0, 0, day).
		Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// capacity bounds the session by the room when its capacity is known,
// otherwise falls back to a generic range.
func (g *SessionGenerator) capacity(room refdata.RoomRef) int {
	if room.Capacity != nil && *room.Capacity != 0 {
		hi := *room.Capacity
		if hi < 2 {
			hi = 2
		}
		lo := 6
		if hi < lo {
			lo = hi
		}
		if lo < 2 {
			lo = 2
		}
		return sampling.IntBetween(g.rng, lo, hi)
	}
	return sampling.IntBetween(g.rng, fallbackRoomCapMin, fallbackRoomCapMax)
}

func (g *SessionGenerator) synthRooms(n int) []refdata.RoomRef {
	rooms := make([]refdata.RoomRef, n)
	for i := range rooms {
		capacity := sampling.IntBetween(g.rng, fallbackRoomCapMin, fallbackRoomCapMax)
		rooms[i] = refdata.RoomRef{ID: newID(g.rng), Capacity: &capacity}
	}
	return rooms
}

func overlapsAny(existing []interval, candidate interval) bool {
	for _, iv := range existing {
		if candidate.start.Before(iv.end) && iv.start.Before(candidate.end) {
			return true
		}
	}
	return false
}
