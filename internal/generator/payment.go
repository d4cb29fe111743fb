package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
	"github.com/studyflow/fixturegen/internal/refdata"
	"github.com/studyflow/fixturegen/internal/sampling"
)

// Fallback pool sizes when enrollments must be synthesized.
const (
	synthParticipantPool = 1200
	synthSessionPool     = 400
)

var (
	paymentAmounts = sampling.NewWeighted(
		[]int{10, 15, 20, 25, 30, 40, 50},
		[]float64{10, 22, 28, 20, 12, 5, 3},
	)

	paymentMethods = sampling.NewWeighted(
		[]string{
			models.PaymentMethodGiftCard,
			models.PaymentMethodCash,
			models.PaymentMethodCreditCard,
			models.PaymentMethodPaypal,
			models.PaymentMethodVenmo,
		},
		[]float64{45, 20, 15, 10, 10},
	)

	attendedPayments = sampling.NewWeighted(
		[]string{models.PaymentStatusPaid, models.PaymentStatusPending, models.PaymentStatusRefunded, models.PaymentStatusFailed},
		[]float64{82, 8, 5, 5},
	)

	noShowPayments = sampling.NewWeighted(
		[]string{models.PaymentStatusWaived, models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusRefunded, models.PaymentStatusFailed},
		[]float64{70, 10, 5, 5, 10},
	)

	cancelledPayments = sampling.NewWeighted(
		[]string{models.PaymentStatusRefunded, models.PaymentStatusVoid, models.PaymentStatusFailed, models.PaymentStatusWaived},
		[]float64{60, 35, 3, 2},
	)

	defaultPayments = sampling.NewWeighted(
		[]string{models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed, models.PaymentStatusRefunded, models.PaymentStatusWaived},
		[]float64{85, 5, 3, 2, 5},
	)

	synthEnrollmentStatuses = sampling.NewWeighted(
		[]string{
			models.EnrollmentStatusEnrolled,
			models.EnrollmentStatusWaitlisted,
			models.EnrollmentStatusCancelled,
			models.EnrollmentStatusAttended,
			models.EnrollmentStatusNoShow,
		},
		[]float64{0.45, 0.10, 0.10, 0.28, 0.07},
	)
)

// PaymentGenerator derives payment rows from enrollment outcomes.
type PaymentGenerator struct {
	opts        config.PaymentOptions
	enrollments []refdata.EnrollmentRef
	rng         *rand.Rand
	logger      zerolog.Logger
}

// NewPaymentGenerator seeds a generator from opts. enrollments may be nil to
// synthesize a pool.
func NewPaymentGenerator(opts config.PaymentOptions, enrollments []refdata.EnrollmentRef, logger zerolog.Logger) *PaymentGenerator {
	return &PaymentGenerator{
		opts:        opts,
		enrollments: enrollments,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		logger:      logger.With().Str("component", "payment_generator").Logger(),
	}
}

// Generate produces up to opts.Count payment rows, at most one per
// (participant, session) pair.
func (g *PaymentGenerator) Generate(ctx context.Context) ([]models.Payment, error) {
	enrollments := g.enrollments
	if len(enrollments) == 0 {
		enrollments = g.synthEnrollments(g.opts.FallbackPool)
		g.logger.Info().Int("pool", len(enrollments)).Msg("synthesized enrollment pool")
	}

	rows := make([]models.Payment, 0, g.opts.Count)
	used := make(map[pair]bool, g.opts.Count)

	attempts := 0
	maxAttempts := g.opts.Count * g.opts.AttemptsPerRow
	for len(rows) < g.opts.Count && attempts < maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempts++
		e := sampling.Pick(g.rng, enrollments)
		if used[pair{e.ParticipantID, e.SessionID}] {
			continue
		}

		row := models.Payment{
			ParticipantID: e.ParticipantID,
			SessionID:     e.SessionID,
			Method:        models.PaymentMethodNone,
			Status:        g.status(e.Status),
		}
		if row.Settles() {
			row.Amount = paymentAmounts.Pick(g.rng)
			row.Method = paymentMethods.Pick(g.rng)
		}
		rows = append(rows, row)
		used[pair{e.ParticipantID, e.SessionID}] = true
	}
	if len(rows) < g.opts.Count {
		if g.opts.Strict {
			return nil, fmt.Errorf("%w: %d of %d payments after %d attempts", ErrTargetMissed, len(rows), g.opts.Count, attempts)
		}
		g.logger.Warn().Int("rows", len(rows)).Int("target", g.opts.Count).Msg("unique pairs exhausted before target")
	}
	g.logger.Info().Int("rows", len(rows)).Int("attempts", attempts).Msg("payments generated")
	return rows, nil
}

// status maps an enrollment outcome to a payment status distribution.
func (g *PaymentGenerator) status(enrollmentStatus string) string {
	switch strings.ToLower(strings.TrimSpace(enrollmentStatus)) {
	case models.EnrollmentStatusAttended:
		return attendedPayments.Pick(g.rng)
	case models.EnrollmentStatusNoShow:
		return noShowPayments.Pick(g.rng)
	case models.EnrollmentStatusCancelled:
		return cancelledPayments.Pick(g.rng)
	case models.EnrollmentStatusWaitlisted:
		return models.PaymentStatusVoid
	}
	return defaultPayments.Pick(g.rng)
}

func (g *PaymentGenerator) synthEnrollments(n int) []refdata.EnrollmentRef {
	participants := synthIDs(g.rng, synthParticipantPool)
	sessions := synthIDs(g.rng, synthSessionPool)

	rows := make([]refdata.EnrollmentRef, 0, n)
	used := make(map[pair]bool, n)
	attempts := 0
	for len(rows) < n && attempts < n*g.opts.AttemptsPerRow {
		attempts++
		pid := sampling.Pick(g.rng, participants)
		sid := sampling.Pick(g.rng, sessions)
		if used[pair{pid, sid}] {
			continue
		}
		rows = append(rows, refdata.EnrollmentRef{
			ParticipantID: pid,
			SessionID:     sid,
			Status:        synthEnrollmentStatuses.Pick(g.rng),
		})
		used[pair{pid, sid}] = true
	}
	return rows
}
