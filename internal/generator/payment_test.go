package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
	"github.com/studyflow/fixturegen/internal/refdata"
)

func paymentOptions(count int, seed int64) config.PaymentOptions {
	return config.PaymentOptions{
		Common:         testCommon(count, seed),
		FallbackPool:   2000,
		AttemptsPerRow: 10,
	}
}

func enrollmentRefs(status string, n int) []refdata.EnrollmentRef {
	refs := make([]refdata.EnrollmentRef, n)
	for i, pid := range idPool("part", n) {
		refs[i] = refdata.EnrollmentRef{ParticipantID: pid, SessionID: "sess-1", Status: status}
	}
	return refs
}

func TestPaymentGeneratorZeroesUnsettledRows(t *testing.T) {
	opts := paymentOptions(400, 16)
	gen := NewPaymentGenerator(opts, nil, testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 400)

	for _, p := range rows {
		if p.Settles() {
			require.Contains(t, []int{10, 15, 20, 25, 30, 40, 50}, p.Amount)
			require.NotEqual(t, models.PaymentMethodNone, p.Method)
		} else {
			require.Zero(t, p.Amount)
			require.Equal(t, models.PaymentMethodNone, p.Method)
		}
	}
}

func TestPaymentGeneratorStatusFollowsOutcome(t *testing.T) {
	cases := []struct {
		name       string
		enrollment string
		allowed    []string
	}{
		{
			"attended", models.EnrollmentStatusAttended,
			[]string{models.PaymentStatusPaid, models.PaymentStatusPending, models.PaymentStatusRefunded, models.PaymentStatusFailed},
		},
		{
			"no show", models.EnrollmentStatusNoShow,
			[]string{models.PaymentStatusWaived, models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusRefunded, models.PaymentStatusFailed},
		},
		{
			"cancelled", models.EnrollmentStatusCancelled,
			[]string{models.PaymentStatusRefunded, models.PaymentStatusVoid, models.PaymentStatusFailed, models.PaymentStatusWaived},
		},
		{
			"unknown", "",
			[]string{models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed, models.PaymentStatusRefunded, models.PaymentStatusWaived},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := paymentOptions(80, 28)
			gen := NewPaymentGenerator(opts, enrollmentRefs(tc.enrollment, 100), testLogger())

			rows, err := gen.Generate(context.Background())
			require.NoError(t, err)
			require.Len(t, rows, 80)
			for _, p := range rows {
				require.Contains(t, tc.allowed, p.Status)
			}
		})
	}
}

func TestPaymentGeneratorWaitlistedAlwaysVoid(t *testing.T) {
	opts := paymentOptions(50, 34)
	gen := NewPaymentGenerator(opts, enrollmentRefs(models.EnrollmentStatusWaitlisted, 60), testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 50)
	for _, p := range rows {
		require.Equal(t, models.PaymentStatusVoid, p.Status)
		require.Zero(t, p.Amount)
		require.Equal(t, models.PaymentMethodNone, p.Method)
	}
}

func TestPaymentGeneratorNormalizesStatusSpelling(t *testing.T) {
	opts := paymentOptions(40, 41)
	gen := NewPaymentGenerator(opts, enrollmentRefs("  Attended ", 50), testLogger())

	rows, err := gen.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 40)
	for _, p := range rows {
		require.Contains(t, []string{
			models.PaymentStatusPaid, models.PaymentStatusPending,
			models.PaymentStatusRefunded, models.PaymentStatusFailed,
		}, p.Status)
	}
}

func TestPaymentGeneratorExhaustedPairs(t *testing.T) {
	refs := enrollmentRefs(models.EnrollmentStatusAttended, 3)

	opts := paymentOptions(10, 26)
	opts.Strict = true
	_, err := NewPaymentGenerator(opts, refs, testLogger()).Generate(context.Background())
	require.ErrorIs(t, err, ErrTargetMissed)

	opts.Strict = false
	rows, err := NewPaymentGenerator(opts, refs, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	seen := make(map[pair]bool)
	for _, p := range rows {
		key := pair{p.ParticipantID, p.SessionID}
		require.False(t, seen[key])
		seen[key] = true
	}
}

func TestPaymentGeneratorDeterministic(t *testing.T) {
	opts := paymentOptions(120, 61)

	first, err := NewPaymentGenerator(opts, nil, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	second, err := NewPaymentGenerator(opts, nil, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
}
