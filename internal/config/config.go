package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/studyflow/fixturegen/internal/models"
)

// DefaultReferenceDate anchors every generated timestamp unless the
// caller overrides it. A fixed date keeps runs reproducible across days.
const DefaultReferenceDate = "2025-09-21"

// defaultSeed matches the seed the fixture suites were first cut with.
const defaultSeed = 1337

// envPrefix namespaces the environment variables mirroring the flags,
// e.g. FIXTUREGEN_SEED or FIXTUREGEN_REFERENCE_DATE.
const envPrefix = "FIXTUREGEN"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Common holds the options every generator shares. Precedence is flag,
// then environment variable, then built-in default.
type Common struct {
	Count         int    `validate:"gte=0"`
	OutFile       string `validate:"required"`
	JSONOut       bool
	Seed          int64
	ReferenceDate time.Time `validate:"required"`
}

func commonFlags(fs *pflag.FlagSet, defaultCount int, defaultOut string) {
	fs.Int("n", defaultCount, "number of rows to generate")
	fs.String("outfile", defaultOut, "output path; .json, .db, .sqlite and .sqlite3 switch the format")
	fs.Bool("json", false, "write a JSON array regardless of the outfile extension")
	fs.Int64("seed", defaultSeed, "random seed")
	fs.String("reference-date", DefaultReferenceDate, "anchor date for generated timestamps (YYYY-MM-DD)")
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	return v, nil
}

func common(v *viper.Viper) (Common, error) {
	raw := v.GetString("reference-date")
	ref, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return Common{}, fmt.Errorf("invalid reference date %q: %w", raw, err)
	}

	return Common{
		Count:         v.GetInt("n"),
		OutFile:       v.GetString("outfile"),
		JSONOut:       v.GetBool("json"),
		Seed:          v.GetInt64("seed"),
		ReferenceDate: ref,
	}, nil
}

// parseCommon builds a generator's flag set, parses args, and resolves
// the shared options. register adds generator-specific flags before the
// parse; the returned viper carries their values.
func parseCommon(name string, args []string, defaultCount int, defaultOut string, register func(*pflag.FlagSet)) (*viper.Viper, Common, error) {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	commonFlags(fs, defaultCount, defaultOut)
	if register != nil {
		register(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, Common{}, err
	}

	v, err := newViper(fs)
	if err != nil {
		return nil, Common{}, err
	}
	c, err := common(v)
	if err != nil {
		return nil, Common{}, err
	}
	return v, c, nil
}

// checkOptions runs struct tag validation over a fully built options
// value.
func checkOptions(opts any) error {
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// requirePositiveCount rejects --n values below one for generators whose
// output has no meaningful empty form.
func requirePositiveCount(c Common) error {
	if c.Count < 1 {
		return fmt.Errorf("row count must be at least 1, got %d", c.Count)
	}
	return nil
}
