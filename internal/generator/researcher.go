package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
	"github.com/studyflow/fixturegen/internal/sampling"
)

var (
	departments = []string{
		"Psychology", "Cognitive Science", "Computer Science", "Neuroscience",
		"Public Health", "Education", "Linguistics", "Biology", "Statistics",
		"Human Development",
	}

	staffDomains = []string{"university.edu", "research.university.edu", "institute.org"}

	researcherTitles = sampling.NewWeighted(
		[]string{
			"Professor", "Associate Professor", "Assistant Professor",
			"Postdoctoral Fellow", "Research Scientist", "Lab Manager",
		},
		[]float64{15, 18, 22, 20, 15, 10},
	)
)

// ResearcherGenerator builds synthetic researcher rows for the staff pool
// that study assignments draw from.
type ResearcherGenerator struct {
	opts   config.ResearcherOptions
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewResearcherGenerator seeds a generator from opts.
func NewResearcherGenerator(opts config.ResearcherOptions, logger zerolog.Logger) *ResearcherGenerator {
	return &ResearcherGenerator{
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		logger: logger.With().Str("component", "researcher_generator").Logger(),
	}
}

// Generate produces opts.Count researcher rows.
func (g *ResearcherGenerator) Generate(ctx context.Context) ([]models.Researcher, error) {
	rows := make([]models.Researcher, 0, g.opts.Count)
	for i := 0; i < g.opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, g.row())
	}
	g.logger.Info().Int("rows", len(rows)).Msg("researchers generated")
	return rows, nil
}

func (g *ResearcherGenerator) row() models.Researcher {
	first := sampling.Pick(g.rng, firstNames)
	last := sampling.Pick(g.rng, lastNames)

	createdSecs := sampling.IntBetween(g.rng, 0, 720*24*3600)
	created := dayStart(g.opts.ReferenceDate).Add(-time.Duration(createdSecs) * time.Second)

	return models.Researcher{
		ResearcherID: newID(g.rng),
		FirstName:    first,
		LastName:     last,
		Email:        slugify(first+"."+last) + "@" + sampling.Pick(g.rng, staffDomains),
		Department:   sampling.Pick(g.rng, departments),
		Title:        researcherTitles.Pick(g.rng),
		Active:       sampling.Chance(g.rng, 0.85),
		CreatedAt:    models.NewTimestamp(created),
	}
}
