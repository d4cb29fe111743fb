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
	// How far back signatures can fall in synthetic mode.
	signedWindowDays = 540
	// Latest a withdrawal can trail its signature in synthetic mode.
	withdrawMaxDays = 240
)

// ConsentGenerator signs participants onto consent versions. With reference
// files it respects each version's effective window; without them it runs
// fully synthetic against fabricated pools.
type ConsentGenerator struct {
	opts         config.ParticipantConsentOptions
	participants []string
	versions     []refdata.VersionRef
	rng          *rand.Rand
	logger       zerolog.Logger
}

// NewConsentGenerator seeds a generator from opts. participants and versions
// are only consulted in file-driven mode.
func NewConsentGenerator(opts config.ParticipantConsentOptions, participants []string, versions []refdata.VersionRef, logger zerolog.Logger) *ConsentGenerator {
	return &ConsentGenerator{
		opts:         opts,
		participants: participants,
		versions:     versions,
		rng:          rand.New(rand.NewSource(opts.Seed)),
		logger:       logger.With().Str("component", "consent_generator").Logger(),
	}
}

// Generate produces up to opts.Count consent rows, at most one per
// (participant, version) pair unless duplicates are allowed.
func (g *ConsentGenerator) Generate(ctx context.Context) ([]models.ParticipantConsent, error) {
	if g.opts.FileDriven() {
		return g.generateFromFiles(ctx)
	}
	return g.generateSynthetic(ctx)
}

func (g *ConsentGenerator) generateSynthetic(ctx context.Context) ([]models.ParticipantConsent, error) {
	participants := synthIDs(g.rng, g.opts.ParticipantPool)
	versions := synthIDs(g.rng, g.opts.VersionPool)
	g.logger.Info().Int("participants", len(participants)).Int("versions", len(versions)).Msg("synthesized pools")

	refEnd := dayEnd(g.opts.ReferenceDate)
	signedFrom := dayStart(g.opts.ReferenceDate).AddDate(0, 0, -signedWindowDays)

	rows := make([]models.ParticipantConsent, 0, g.opts.Count)
	used := make(map[pair]bool, g.opts.Count)
	attempts := 0
	maxAttempts := g.opts.Count * g.opts.AttemptsPerRow
	for len(rows) < g.opts.Count && attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempts++
		pid := sampling.Pick(g.rng, participants)
		cvid := sampling.Pick(g.rng, versions)
		if !g.opts.AllowDuplicates && used[pair{pid, cvid}] {
			continue
		}

		signed := sampling.TimeBetween(g.rng, signedFrom, refEnd)
		var withdrawn time.Time
		if sampling.Chance(g.rng, g.opts.WithdrawRate) {
			latest := minTime(signed.AddDate(0, 0, withdrawMaxDays), refEnd)
			if latest.After(signed) {
				withdrawn = sampling.TimeBetween(g.rng, signed.Add(time.Minute), latest)
			}
		}
		rows = append(rows, models.ParticipantConsent{
			ParticipantConsentID: newID(g.rng),
			ParticipantID:        pid,
			ConsentVersionID:     cvid,
			SignedAt:             models.NewTimestamp(signed),
			WithdrawnAt:          models.NewTimestamp(withdrawn),
		})
		used[pair{pid, cvid}] = true
	}
	if err := g.checkShortfall(len(rows), attempts); err != nil {
		return nil, err
	}
	g.logger.Info().Int("rows", len(rows)).Int("attempts", attempts).Msg("consents generated")
	return rows, nil
}

func (g *ConsentGenerator) generateFromFiles(ctx context.Context) ([]models.ParticipantConsent, error) {
	if len(g.participants) == 0 {
		return nil, ErrNoParticipants
	}
	refEnd := dayEnd(g.opts.ReferenceDate)
	usable := make([]refdata.VersionRef, 0, len(g.versions))
	for _, v := range g.versions {
		if !v.From.IsZero() && !v.From.After(refEnd) {
			usable = append(usable, v)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("%w: every version is unparseable or future-only", ErrNoUsableVersions)
	}
	g.logger.Info().Int("participants", len(g.participants)).Int("versions", len(usable)).Msg("loaded signing pools")

	rows := make([]models.ParticipantConsent, 0, g.opts.Count)
	used := make(map[pair]bool, g.opts.Count)
	attempts := 0
	maxAttempts := g.opts.Count * g.opts.AttemptsPerRow
	for len(rows) < g.opts.Count && attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempts++
		pid := sampling.Pick(g.rng, g.participants)
		v := sampling.Pick(g.rng, usable)
		if !g.opts.AllowDuplicates && used[pair{pid, v.ID}] {
			continue
		}
		signed, ok := g.signWithin(v, refEnd)
		if !ok {
			continue
		}
		rows = append(rows, models.ParticipantConsent{
			ParticipantConsentID: newID(g.rng),
			ParticipantID:        pid,
			ConsentVersionID:     v.ID,
			SignedAt:             models.NewTimestamp(signed),
			WithdrawnAt:          models.NewTimestamp(g.maybeWithdraw(signed, v, refEnd)),
		})
		used[pair{pid, v.ID}] = true
	}
	if err := g.checkShortfall(len(rows), attempts); err != nil {
		return nil, err
	}
	g.logger.Info().Int("rows", len(rows)).Int("attempts", attempts).Msg("consents generated")
	return rows, nil
}

// signWithin draws a signature inside the version's effective window capped
// at the reference date. A window that closed before it opened yields no
// signature.
func (g *ConsentGenerator) signWithin(v refdata.VersionRef, refEnd time.Time) (time.Time, bool) {
	end := refEnd
	if !v.To.IsZero() && v.To.Before(end) {
		end = v.To
	}
	if end.Before(v.From) {
		return time.Time{}, false
	}
	return sampling.TimeBetween(g.rng, v.From, end), true
}

// maybeWithdraw returns a withdrawal at least a minute after signing, capped
// at the version close (or the reference date). Zero means the signature
// stands, either by chance or because the window has no room left.
func (g *ConsentGenerator) maybeWithdraw(signed time.Time, v refdata.VersionRef, refEnd time.Time) time.Time {
	if !sampling.Chance(g.rng, g.opts.WithdrawRate) {
		return time.Time{}
	}
	last := refEnd
	if !v.To.IsZero() && v.To.Before(last) {
		last = v.To
	}
	if !last.After(signed) {
		return time.Time{}
	}
	delta := int(last.Sub(signed) / time.Second)
	if delta < 60 {
		delta = 60
	}
	when := signed.Add(time.Duration(sampling.IntBetween(g.rng, 60, delta)) * time.Second)
	if when.After(last) {
		when = last
	}
	return when
}

func (g *ConsentGenerator) checkShortfall(got, attempts int) error {
	if got >= g.opts.Count {
		return nil
	}
	if g.opts.Strict {
		return fmt.Errorf("%w: %d of %d consents after %d attempts", ErrTargetMissed, got, g.opts.Count, attempts)
	}
	g.logger.Warn().Int("rows", got).Int("target", g.opts.Count).Msg("unique pairs exhausted before target")
	return nil
}
