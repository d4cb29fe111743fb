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

var (
	coordinatorCounts = sampling.NewWeighted(
		[]int{0, 1, 2},
		[]float64{0.60, 0.30, 0.10},
	)

	topUpRoles = sampling.NewWeighted(
		[]string{models.RoleRA, models.RoleCoordinator, models.RolePI},
		[]float64{0.80, 0.15, 0.05},
	)
)

// StudyResearcherGenerator assigns researchers to studies. Every study gets
// a baseline team (PIs, coordinators, RAs); when a row target is set the
// output is topped up with extra unique pairs.
type StudyResearcherGenerator struct {
	opts        config.StudyResearcherOptions
	studies     []string
	researchers []string
	rng         *rand.Rand
	logger      zerolog.Logger
}

// NewStudyResearcherGenerator seeds a generator from opts. Either pool may
// be nil to synthesize one.
func NewStudyResearcherGenerator(opts config.StudyResearcherOptions, studies, researchers []string, logger zerolog.Logger) *StudyResearcherGenerator {
	return &StudyResearcherGenerator{
		opts:        opts,
		studies:     studies,
		researchers: researchers,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		logger:      logger.With().Str("component", "study_researcher_generator").Logger(),
	}
}

// Generate builds the per-study baseline and tops up toward opts.Count when
// it exceeds the baseline. A zero count keeps the baseline only.
func (g *StudyResearcherGenerator) Generate(ctx context.Context) ([]models.StudyResearcher, error) {
	studies := g.studies
	if len(studies) == 0 {
		studies = synthIDs(g.rng, g.opts.StudyPool)
		g.logger.Info().Int("pool", len(studies)).Msg("synthesized study pool")
	}
	researchers := g.researchers
	if len(researchers) == 0 {
		researchers = synthIDs(g.rng, g.opts.ResearcherPool)
		g.logger.Info().Int("pool", len(researchers)).Msg("synthesized researcher pool")
	}

	rows, err := g.baseline(ctx, studies, researchers)
	if err != nil {
		return nil, err
	}
	if g.opts.Count > 0 && len(rows) < g.opts.Count {
		rows, err = g.topUp(ctx, rows, studies, researchers)
		if err != nil {
			return nil, err
		}
	}
	g.logger.Info().Int("rows", len(rows)).Int("studies", len(studies)).Msg("study assignments generated")
	return rows, nil
}

func (g *StudyResearcherGenerator) baseline(ctx context.Context, studies, researchers []string) ([]models.StudyResearcher, error) {
	rows := make([]models.StudyResearcher, 0, len(studies)*(g.opts.PIPerStudy+g.opts.RAMax+1))
	for _, sid := range studies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		usedHere := make(map[string]bool)

		for _, rid := range g.pickUnique(researchers, usedHere, g.opts.PIPerStudy) {
			rows = append(rows, models.StudyResearcher{StudyID: sid, ResearcherID: rid, Role: models.RolePI})
			usedHere[rid] = true
		}
		for _, rid := range g.pickUnique(researchers, usedHere, coordinatorCounts.Pick(g.rng)) {
			rows = append(rows, models.StudyResearcher{StudyID: sid, ResearcherID: rid, Role: models.RoleCoordinator})
			usedHere[rid] = true
		}
		nRAs := sampling.IntBetween(g.rng, g.opts.RAMin, g.opts.RAMax)
		for _, rid := range g.pickUnique(researchers, usedHere, nRAs) {
			rows = append(rows, models.StudyResearcher{StudyID: sid, ResearcherID: rid, Role: models.RoleRA})
			usedHere[rid] = true
		}
	}
	return rows, nil
}

func (g *StudyResearcherGenerator) topUp(ctx context.Context, rows []models.StudyResearcher, studies, researchers []string) ([]models.StudyResearcher, error) {
	used := make(map[pair]bool, len(rows))
	for _, r := range rows {
		used[pair{r.StudyID, r.ResearcherID}] = true
	}

	attempts := 0
	maxAttempts := (g.opts.Count - len(rows)) * g.opts.AttemptsPerRow
	for len(rows) < g.opts.Count && attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempts++
		sid := sampling.Pick(g.rng, studies)
		rid := sampling.Pick(g.rng, researchers)
		if used[pair{sid, rid}] {
			continue
		}
		rows = append(rows, models.StudyResearcher{StudyID: sid, ResearcherID: rid, Role: topUpRoles.Pick(g.rng)})
		used[pair{sid, rid}] = true
	}
	if len(rows) < g.opts.Count {
		if g.opts.Strict {
			return nil, fmt.Errorf("%w: %d of %d assignments after %d attempts", ErrTargetMissed, len(rows), g.opts.Count, attempts)
		}
		g.logger.Warn().Int("rows", len(rows)).Int("target", g.opts.Count).Msg("unique pairs exhausted before target")
	}
	return rows, nil
}

// pickUnique draws up to k researchers not already used on this study, in
// shuffled order.
func (g *StudyResearcherGenerator) pickUnique(pool []string, forbid map[string]bool, k int) []string {
	candidates := make([]string, 0, len(pool))
	for _, rid := range pool {
		if !forbid[rid] {
			candidates = append(candidates, rid)
		}
	}
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	if k < 0 {
		k = 0
	}
	return candidates[:k]
}
