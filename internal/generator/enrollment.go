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

// How far before a session enrollments can start appearing.
const enrollOpenDays = 90

var (
	// Sessions already over: outcomes are mostly recorded.
	pastEnrollmentStatuses = sampling.NewWeighted(
		[]string{
			models.EnrollmentStatusAttended,
			models.EnrollmentStatusNoShow,
			models.EnrollmentStatusCancelled,
			models.EnrollmentStatusEnrolled,
			models.EnrollmentStatusWaitlisted,
		},
		[]float64{0.55, 0.12, 0.08, 0.25, 0.00},
	)

	// Sessions still ahead: attendance outcomes are not possible yet.
	futureEnrollmentStatuses = sampling.NewWeighted(
		[]string{
			models.EnrollmentStatusEnrolled,
			models.EnrollmentStatusCancelled,
			models.EnrollmentStatusWaitlisted,
			models.EnrollmentStatusNoShow,
			models.EnrollmentStatusAttended,
		},
		[]float64{0.70, 0.12, 0.08, 0.00, 0.00},
	)
)

// EnrollmentGenerator pairs participants with sessions, tracking per-session
// seat occupancy and aligning timestamps with the session schedule.
type EnrollmentGenerator struct {
	opts         config.EnrollmentOptions
	participants []string
	sessions     []refdata.SessionRef
	rng          *rand.Rand
	logger       zerolog.Logger
}

// NewEnrollmentGenerator seeds a generator from opts. Either pool may be nil
// to synthesize one.
func NewEnrollmentGenerator(opts config.EnrollmentOptions, participants []string, sessions []refdata.SessionRef, logger zerolog.Logger) *EnrollmentGenerator {
	return &EnrollmentGenerator{
		opts:         opts,
		participants: participants,
		sessions:     sessions,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		logger:       logger.With().Str("component", "enrollment_generator").Logger(),
	}
}

// Generate produces up to opts.Count unique (participant, session) rows.
// The attempt budget is AttemptsPerRow per requested row; running out of
// fresh pairs under-delivers unless strict mode makes it an error.
func (g *EnrollmentGenerator) Generate(ctx context.Context) ([]models.Enrollment, error) {
	participants := g.participants
	if len(participants) == 0 {
		participants = synthIDs(g.rng, g.opts.ParticipantPool)
		g.logger.Info().Int("pool", len(participants)).Msg("synthesized participant pool")
	}
	sessions := g.sessions
	if len(sessions) == 0 {
		sessions = g.synthSessions(g.opts.SessionPool)
		g.logger.Info().Int("pool", len(sessions)).Msg("synthesized session pool")
	}

	rows := make([]models.Enrollment, 0, g.opts.Count)
	used := make(map[pair]bool, g.opts.Count)
	seats := make(map[string]int)

	attempts := 0
	maxAttempts := g.opts.Count * g.opts.AttemptsPerRow
	for len(rows) < g.opts.Count && attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempts++
		pid := sampling.Pick(g.rng, participants)
		sess := sampling.Pick(g.rng, sessions)
		if row, ok := g.build(pid, sess, used, seats); ok {
			rows = append(rows, row)
		}
	}
	if len(rows) < g.opts.Count {
		if g.opts.Strict {
			return nil, fmt.Errorf("%w: %d of %d enrollments after %d attempts", ErrTargetMissed, len(rows), g.opts.Count, attempts)
		}
		g.logger.Warn().Int("rows", len(rows)).Int("target", g.opts.Count).Msg("unique pairs exhausted before target")
	}
	g.logger.Info().Int("rows", len(rows)).Int("attempts", attempts).Msg("enrollments generated")
	return rows, nil
}

func (g *EnrollmentGenerator) build(pid string, sess refdata.SessionRef, used map[pair]bool, seats map[string]int) (models.Enrollment, bool) {
	if used[pair{pid, sess.ID}] {
		return models.Enrollment{}, false
	}

	start := sess.Start
	if start.IsZero() {
		start = dayStart(g.opts.ReferenceDate).AddDate(0, 0, 7)
	}
	end := sess.End
	if end.IsZero() {
		end = start.Add(time.Hour)
	}
	now := dayEnd(g.opts.ReferenceDate)

	taken := seats[sess.ID]
	seatAvailable := true
	if sess.Capacity != nil {
		capacity := *sess.Capacity
		if capacity < 0 {
			capacity = 0
		}
		seatAvailable = taken < capacity
	}

	var status string
	switch {
	case !seatAvailable:
		status = models.EnrollmentStatusWaitlisted
	case !end.After(now):
		status = pastEnrollmentStatuses.Pick(g.rng)
	default:
		status = futureEnrollmentStatuses.Pick(g.rng)
	}

	created := g.createdAt(start, now)
	updated := g.updatedAt(status, created, start, end, now)

	row := models.Enrollment{
		ParticipantID: pid,
		SessionID:     sess.ID,
		Status:        status,
		CreatedAt:     models.NewTimestamp(created),
		UpdatedAt:     models.NewTimestamp(updated),
	}
	if seatAvailable && row.HoldsSeat() {
		seats[sess.ID] = taken + 1
	}
	used[pair{pid, sess.ID}] = true
	return row, true
}

// createdAt places the signup inside the enrollment window before the
// session, repairing the window when the session starts too soon after it
// opens.
func (g *EnrollmentGenerator) createdAt(start, now time.Time) time.Time {
	openFrom := start.AddDate(0, 0, -enrollOpenDays)
	openTo := minTime(start.Add(-time.Hour), now)
	if !openTo.After(openFrom) {
		openTo = start.Add(-30 * time.Minute)
		openFrom = openTo.AddDate(0, 0, -1)
	}
	return sampling.TimeBetween(g.rng, openFrom, openTo)
}

func (g *EnrollmentGenerator) updatedAt(status string, created, start, end, now time.Time) time.Time {
	switch status {
	case models.EnrollmentStatusCancelled:
		last := minTime(start.Add(-10*time.Minute), now)
		if !last.After(created) {
			last = created.Add(5 * time.Minute)
		}
		return sampling.TimeBetween(g.rng, created.Add(time.Minute), last)
	case models.EnrollmentStatusAttended, models.EnrollmentStatusNoShow:
		base := start
		if !end.After(now) {
			base = end
		}
		return sampling.TimeBetween(g.rng, base, minTime(base.Add(3*time.Hour), now))
	default:
		last := minTime(now, start)
		if !last.After(created) {
			last = created.Add(5 * time.Minute)
		}
		return sampling.TimeBetween(g.rng, created, last)
	}
}

// synthSessions spreads fabricated sessions across the scheduling window so
// past/future status logic still has both sides to work with.
func (g *EnrollmentGenerator) synthSessions(n int) []refdata.SessionRef {
	base := dayStart(g.opts.ReferenceDate)
	sessions := make([]refdata.SessionRef, n)
	for i := range sessions {
		start := base.
			AddDate(0, 0, sampling.IntBetween(g.rng, -sessionDaysPast, sessionDaysFuture)).
			Add(time.Duration(sampling.IntBetween(g.rng, sessionStartHourMin, sessionStartHourMax)) * time.Hour).
			Add(time.Duration(sampling.Pick(g.rng, sessionStartMinutes)) * time.Minute)
		end := start.Add(time.Duration(sampling.IntBetween(g.rng, sessionDurationMin, sessionDurationMax)) * time.Minute)
		capacity := sampling.IntBetween(g.rng, fallbackRoomCapMin, fallbackRoomCapMax)
		sessions[i] = refdata.SessionRef{ID: newID(g.rng), Start: start, End: end, Capacity: &capacity}
	}
	return sessions
}
