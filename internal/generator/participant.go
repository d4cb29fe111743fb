package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
	"github.com/studyflow/fixturegen/internal/sampling"
)

const (
	participantMinAge = 18
	participantMaxAge = 65
)

var (
	majors = []string{
		"Computer Science", "Biology", "Psychology", "Economics",
		"Mechanical Engineering", "Electrical Engineering", "Sociology",
		"Nursing", "Business", "Mathematics", "Chemistry",
		"Political Science", "Art History", "English", "Statistics",
		"Data Science", "Neuroscience",
	}

	genders = []string{"Female", "Male", "Nonbinary", "Prefer not to say"}

	ethnicities = []string{
		"Asian", "Black or African American", "Hispanic or Latino",
		"Middle Eastern or North African",
		"Native American or Alaska Native",
		"Native Hawaiian or Other Pacific Islander",
		"White", "Two or More Races", "Prefer not to say",
	}

	emailDomains = []string{"example.edu", "university.edu", "mail.edu", "campus.edu"}

	bioTemplates = []string{
		"Interested in %s, research participation, and campus volunteering.",
		"Enjoys intramural sports, hackathons, and learning more about %s.",
		"Looking to gain exposure to human subjects research related to %s.",
		"Works part-time, balances coursework in %s with community projects.",
		"Exploring career paths that connect %s with real-world impact.",
	}

	participantStatuses = sampling.NewWeighted(
		[]string{
			models.ParticipantStatusActive,
			models.ParticipantStatusPaused,
			models.ParticipantStatusIneligible,
			models.ParticipantStatusBanned,
		},
		[]float64{0.78, 0.12, 0.08, 0.02},
	)
)

// ParticipantGenerator builds synthetic participant profiles.
type ParticipantGenerator struct {
	opts   config.ParticipantOptions
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewParticipantGenerator seeds a generator from opts.
func NewParticipantGenerator(opts config.ParticipantOptions, logger zerolog.Logger) *ParticipantGenerator {
	return &ParticipantGenerator{
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		logger: logger.With().Str("component", "participant_generator").Logger(),
	}
}

// Generate produces opts.Count participant rows.
func (g *ParticipantGenerator) Generate(ctx context.Context) ([]models.Participant, error) {
	rows := make([]models.Participant, 0, g.opts.Count)
	for i := 0; i < g.opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, g.row())
	}
	g.logger.Info().Int("rows", len(rows)).Msg("participants generated")
	return rows, nil
}

func (g *ParticipantGenerator) row() models.Participant {
	first := sampling.Pick(g.rng, firstNames)
	last := sampling.Pick(g.rng, lastNames)
	major := sampling.Pick(g.rng, majors)
	dob, age := g.dobAndAge(participantMinAge, participantMaxAge)

	created := g.createdWithin(365)
	updated := created.
		AddDate(0, 0, sampling.IntBetween(g.rng, 0, 120)).
		Add(time.Duration(sampling.IntBetween(g.rng, 0, 86400)) * time.Second)

	return models.Participant{
		ParticipantID: newID(g.rng),
		FirstName:     first,
		LastName:      last,
		Email:         g.email(first, last),
		Phone:         g.phone(),
		DateOfBirth:   models.NewDate(dob),
		Age:           age,
		Gender:        sampling.Pick(g.rng, genders),
		Ethnicity:     sampling.Pick(g.rng, ethnicities),
		Major:         major,
		ClassYear:     g.opts.ReferenceDate.Year() + sampling.IntBetween(g.rng, 0, 5),
		GPA:           g.gpa(2.0, 4.0),
		Status:        participantStatuses.Pick(g.rng),
		Bio:           fmt.Sprintf(sampling.Pick(g.rng, bioTemplates), major),
		CreatedAt:     models.NewTimestamp(created),
		UpdatedAt:     models.NewTimestamp(updated),
	}
}

// dobAndAge picks an age uniformly, then a birthday consistent with it, and
// recomputes the exact age against the reference date.
func (g *ParticipantGenerator) dobAndAge(minAge, maxAge int) (time.Time, int) {
	ref := g.opts.ReferenceDate
	age := sampling.IntBetween(g.rng, minAge, maxAge)

	start := time.Date(ref.Year()-age, ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -365)
	end := time.Date(ref.Year()-(age-1), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	if start.After(end) {
		start, end = end, start
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		days = 0
	}
	dob := start.AddDate(0, 0, sampling.IntBetween(g.rng, 0, days))

	computed := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		computed--
	}
	return dob, computed
}

// createdWithin returns a timestamp up to daysBack days before the
// reference date's midnight.
func (g *ParticipantGenerator) createdWithin(daysBack int) time.Time {
	secs := sampling.IntBetween(g.rng, 0, daysBack*24*3600)
	return dayStart(g.opts.ReferenceDate).Add(-time.Duration(secs) * time.Second)
}

func (g *ParticipantGenerator) gpa(lo, hi float64) float64 {
	v := lo + sampling.Beta(g.rng, 6, 3)*(hi-lo)
	return math.Round(v*100) / 100
}

func (g *ParticipantGenerator) email(first, last string) string {
	handles := []string{
		first + "." + last,
		first + last[:1],
		first[:1] + last,
		fmt.Sprintf("%s%s%d", first, last, sampling.IntBetween(g.rng, 1, 99)),
	}
	return slugify(sampling.Pick(g.rng, handles)) + "@" + sampling.Pick(g.rng, emailDomains)
}

// phone emits a US-style number whose area and exchange blocks avoid 0/1
// leading digits.
func (g *ParticipantGenerator) phone() string {
	return fmt.Sprintf("%d%02d-%d%02d-%04d",
		sampling.IntBetween(g.rng, 2, 9), sampling.IntBetween(g.rng, 0, 99),
		sampling.IntBetween(g.rng, 2, 9), sampling.IntBetween(g.rng, 0, 99),
		sampling.IntBetween(g.rng, 0, 9999))
}

// slugify lowercases s and replaces every non-alphanumeric rune with a
// hyphen, trimming hyphens at both ends.
func slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
