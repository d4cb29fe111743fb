package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
	"github.com/studyflow/fixturegen/internal/sampling"
)

var (
	studyDomains = []string{
		"Cognitive Psychology", "Human-Computer Interaction", "Sleep & Memory",
		"Nutrition & Performance", "Exercise Science", "Social Behavior",
		"Learning & Education", "Attention & Perception", "Language Processing",
		"Decision Making", "Neuroscience", "Mental Health", "Usability Testing",
		"Human Factors", "Affect & Emotion", "Motivation & Goals",
	}

	studyMethods = []string{
		"online survey", "lab-based task", "EEG session", "eye-tracking study",
		"VR interaction task", "mobile app diary", "A/B usability test",
		"behavioral game", "reaction-time task", "interview session",
	}

	studyPopulations = []string{
		"undergraduates", "graduate students", "general adults", "bilingual speakers",
		"habitual nappers", "competitive athletes", "night owls", "early risers",
		"heavy social media users", "first-year students", "STEM majors",
	}

	studyIncentives = []string{
		"$10 gift card", "$15 gift card", "$20 gift card", "course credit",
		"$25 gift card", "snacks + course credit",
	}

	studyGoals = []string{
		"measure short-term memory accuracy", "quantify decision speed under time pressure",
		"evaluate UI learnability", "assess the impact of sleep duration on recall",
		"study effects of nutrition on reaction time", "model social conformity behavior",
		"compare different feedback strategies on learning", "analyze eye movements during reading",
		"test usability of a new mobile interface", "understand bilingual lexical access",
	}

	studyMinutes = []int{20, 30, 35, 45, 60, 75, 90}

	// Skewed toward 18+ adult samples with moderate upper bounds.
	studyMinAges = []int{18, 18, 18, 21}
	studyMaxAges = []int{45, 55, 60, 65}

	studyMinGPAs = sampling.NewWeighted(
		[]float64{2.0, 2.3, 2.5, 2.7, 3.0, 3.2, 3.5},
		[]float64{30, 15, 20, 12, 15, 6, 2},
	)

	studyCooldowns = []int{0, 7, 14, 21, 30}
)

// StudyGenerator builds synthetic study rows.
type StudyGenerator struct {
	opts   config.StudyOptions
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewStudyGenerator seeds a generator from opts.
func NewStudyGenerator(opts config.StudyOptions, logger zerolog.Logger) *StudyGenerator {
	return &StudyGenerator{
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		logger: logger.With().Str("component", "study_generator").Logger(),
	}
}

// Generate produces opts.Count study rows.
func (g *StudyGenerator) Generate(ctx context.Context) ([]models.Study, error) {
	rows := make([]models.Study, 0, g.opts.Count)
	for i := 0; i < g.opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, g.row())
	}
	g.logger.Info().Int("rows", len(rows)).Msg("studies generated")
	return rows, nil
}

func (g *StudyGenerator) row() models.Study {
	minAge, maxAge := g.agePair()

	created := sampling.TimeBetween(g.rng,
		dayStart(g.opts.ReferenceDate).AddDate(0, 0, -540),
		dayStart(g.opts.ReferenceDate))
	updated := created.
		AddDate(0, 0, sampling.IntBetween(g.rng, 0, 180)).
		Add(time.Duration(sampling.IntBetween(g.rng, 0, 86400)) * time.Second)

	return models.Study{
		StudyID:      newID(g.rng),
		Title:        g.title(),
		Description:  g.description(),
		MinAge:       minAge,
		MaxAge:       maxAge,
		MinGPA:       studyMinGPAs.Pick(g.rng),
		CooldownDays: sampling.Pick(g.rng, studyCooldowns),
		Active:       sampling.Chance(g.rng, 0.7),
		CreatedAt:    models.NewTimestamp(created),
		UpdatedAt:    models.NewTimestamp(updated),
	}
}

func (g *StudyGenerator) title() string {
	domain := sampling.Pick(g.rng, studyDomains)
	method := sampling.Pick(g.rng, studyMethods)
	goal := sampling.Pick(g.rng, studyGoals)
	variants := []string{
		domain + ": " + sentenceCase(goal),
		domain + " via " + titleCase(method),
		sentenceCase(goal) + " (" + domain + ")",
		domain + " – " + sentenceCase(goal),
	}
	return sampling.Pick(g.rng, variants)
}

func (g *StudyGenerator) description() string {
	return fmt.Sprintf(
		"This %s study uses a %s with %s. It aims to %s. Approx. %d minutes. Compensation: %s. "+
			"Participation is voluntary; you may withdraw at any time.",
		strings.ToLower(sampling.Pick(g.rng, studyDomains)),
		sampling.Pick(g.rng, studyMethods),
		sampling.Pick(g.rng, studyPopulations),
		sampling.Pick(g.rng, studyGoals),
		sampling.Pick(g.rng, studyMinutes),
		sampling.Pick(g.rng, studyIncentives),
	)
}

func (g *StudyGenerator) agePair() (int, int) {
	minAge := sampling.Pick(g.rng, studyMinAges)
	maxAge := sampling.Pick(g.rng, studyMaxAges)
	if maxAge < minAge {
		maxAge = minAge + sampling.IntBetween(g.rng, 1, 5)
	}
	return minAge, maxAge
}
