package generator

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/config"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testCommon(count int, seed int64) config.Common {
	return config.Common{
		Count:         count,
		OutFile:       "out.csv",
		Seed:          seed,
		ReferenceDate: time.Date(2025, time.September, 21, 0, 0, 0, 0, time.UTC),
	}
}

func intPtr(v int) *int {
	return &v
}
