package generator

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
	"github.com/studyflow/fixturegen/internal/sampling"
)

const (
	// First versions take effect well before the reference date so the
	// signing generator has usable windows.
	versionFirstFromMinDays = 180
	versionFirstFromMaxDays = 900

	versionDurationMinDays = 60
	versionDurationMaxDays = 360
)

// ConsentVersionGenerator builds per-study chains of consent form revisions
// with consecutive, non-overlapping effective windows.
type ConsentVersionGenerator struct {
	opts    config.ConsentVersionOptions
	studies []string
	rng     *rand.Rand
	logger  zerolog.Logger
}

// NewConsentVersionGenerator seeds a generator from opts. studies may be nil
// to synthesize a pool.
func NewConsentVersionGenerator(opts config.ConsentVersionOptions, studies []string, logger zerolog.Logger) *ConsentVersionGenerator {
	return &ConsentVersionGenerator{
		opts:    opts,
		studies: studies,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		logger:  logger.With().Str("component", "consent_version_generator").Logger(),
	}
}

// Generate emits whole version chains, one study at a time in shuffled
// order, until at least opts.Count rows exist or every study has a chain.
// Chains are never split, so the output may exceed the target by a few rows.
func (g *ConsentVersionGenerator) Generate(ctx context.Context) ([]models.ConsentVersion, error) {
	studies := g.studies
	if len(studies) == 0 {
		studies = synthIDs(g.rng, g.opts.StudyPool)
		g.logger.Info().Int("pool", len(studies)).Msg("synthesized study pool")
	}
	shuffled := make([]string, len(studies))
	copy(shuffled, studies)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	rows := make([]models.ConsentVersion, 0, g.opts.Count)
	for _, sid := range shuffled {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(rows) >= g.opts.Count {
			break
		}
		rows = append(rows, g.chain(sid)...)
	}
	g.logger.Info().Int("rows", len(rows)).Int("studies", len(shuffled)).Msg("consent versions generated")
	return rows, nil
}

func (g *ConsentVersionGenerator) chain(studyID string) []models.ConsentVersion {
	k := sampling.IntBetween(g.rng, g.opts.MinVersions, g.opts.MaxVersions)
	refStart := dayStart(g.opts.ReferenceDate)

	from := sampling.TimeBetween(g.rng,
		refStart.AddDate(0, 0, -versionFirstFromMaxDays),
		refStart.AddDate(0, 0, -versionFirstFromMinDays))

	out := make([]models.ConsentVersion, 0, k)
	for v := 1; v <= k; v++ {
		to := from.AddDate(0, 0, sampling.IntBetween(g.rng, versionDurationMinDays, versionDurationMaxDays))
		row := models.ConsentVersion{
			ConsentVersionID: newID(g.rng),
			StudyID:          studyID,
			Version:          fmt.Sprintf("v%d", v),
			EffectiveFrom:    models.NewTimestamp(from),
			EffectiveTo:      models.NewTimestamp(to),
		}
		if v == k && sampling.Chance(g.rng, g.opts.OpenEndedRate) {
			row.EffectiveTo = models.Timestamp{}
		}
		out = append(out, row)
		from = to
	}
	return out
}
