package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ParticipantOptions configures the participant generator.
type ParticipantOptions struct {
	Common
}

// LoadParticipants parses options for gen-participants.
func LoadParticipants(args []string) (ParticipantOptions, error) {
	_, c, err := parseCommon("gen-participants", args, 60, "participants.csv", nil)
	if err != nil {
		return ParticipantOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return ParticipantOptions{}, err
	}
	opts := ParticipantOptions{Common: c}
	return opts, checkOptions(opts)
}

// StudyOptions configures the study generator.
type StudyOptions struct {
	Common
}

// LoadStudies parses options for gen-studies.
func LoadStudies(args []string) (StudyOptions, error) {
	_, c, err := parseCommon("gen-studies", args, 40, "studies.csv", nil)
	if err != nil {
		return StudyOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return StudyOptions{}, err
	}
	opts := StudyOptions{Common: c}
	return opts, checkOptions(opts)
}

// RoomOptions configures the room generator.
type RoomOptions struct {
	Common
}

// LoadRooms parses options for gen-rooms.
func LoadRooms(args []string) (RoomOptions, error) {
	_, c, err := parseCommon("gen-rooms", args, 200, "rooms.csv", nil)
	if err != nil {
		return RoomOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return RoomOptions{}, err
	}
	opts := RoomOptions{Common: c}
	return opts, checkOptions(opts)
}

// ResearcherOptions configures the researcher generator.
type ResearcherOptions struct {
	Common
}

// LoadResearchers parses options for gen-researchers.
func LoadResearchers(args []string) (ResearcherOptions, error) {
	_, c, err := parseCommon("gen-researchers", args, 120, "researchers.csv", nil)
	if err != nil {
		return ResearcherOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return ResearcherOptions{}, err
	}
	opts := ResearcherOptions{Common: c}
	return opts, checkOptions(opts)
}

// ConsentVersionOptions configures the consent version generator.
type ConsentVersionOptions struct {
	Common
	StudiesFile   string
	StudyPool     int     `validate:"gte=1"`
	MinVersions   int     `validate:"gte=1"`
	MaxVersions   int     `validate:"gtefield=MinVersions"`
	OpenEndedRate float64 `validate:"gte=0,lte=1"`
}

// LoadConsentVersions parses options for gen-consent-versions.
func LoadConsentVersions(args []string) (ConsentVersionOptions, error) {
	v, c, err := parseCommon("gen-consent-versions", args, 30, "consent_versions.csv", func(fs *pflag.FlagSet) {
		fs.String("studies-file", "studies.csv", "optional studies CSV/JSON to draw study ids from")
		fs.Int("study-pool", 30, "synthesized study pool size when no file is usable")
		fs.Int("min-versions", 1, "minimum consent versions per study")
		fs.Int("max-versions", 4, "maximum consent versions per study")
		fs.Float64("open-ended-rate", 0.7, "probability the newest version stays open-ended")
	})
	if err != nil {
		return ConsentVersionOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return ConsentVersionOptions{}, err
	}
	opts := ConsentVersionOptions{
		Common:        c,
		StudiesFile:   v.GetString("studies-file"),
		StudyPool:     v.GetInt("study-pool"),
		MinVersions:   v.GetInt("min-versions"),
		MaxVersions:   v.GetInt("max-versions"),
		OpenEndedRate: v.GetFloat64("open-ended-rate"),
	}
	return opts, checkOptions(opts)
}

// StudyResearcherOptions configures the study assignment generator. A
// zero Count keeps the per-study baseline without topping up.
type StudyResearcherOptions struct {
	Common
	StudiesFile     string
	AltStudiesFile  string
	ResearchersFile string
	StudyPool       int `validate:"gte=1"`
	ResearcherPool  int `validate:"gte=1"`
	PIPerStudy      int `validate:"gte=1"`
	RAMin           int `validate:"gte=0"`
	RAMax           int `validate:"gtefield=RAMin"`
	AttemptsPerRow  int `validate:"gte=1"`
	Strict          bool
}

// LoadStudyResearchers parses options for gen-study-researchers,
// clamping the team shape before validating it.
func LoadStudyResearchers(args []string) (StudyResearcherOptions, error) {
	v, c, err := parseCommon("gen-study-researchers", args, 0, "study_researchers.csv", func(fs *pflag.FlagSet) {
		fs.String("studies-file", "study.csv", "optional studies CSV/JSON to draw study ids from")
		fs.String("alt-studies-file", "studies.csv", "fallback studies path tried after studies-file")
		fs.String("researchers-file", "researchers.csv", "optional researchers CSV/JSON to draw researcher ids from")
		fs.Int("study-pool", 300, "synthesized study pool size when no file is usable")
		fs.Int("researcher-pool", 500, "synthesized researcher pool size when no file is usable")
		fs.Int("pi-per-study", 1, "principal investigators per study")
		fs.Int("ra-min", 1, "minimum research assistants per study")
		fs.Int("ra-max", 3, "maximum research assistants per study")
		fs.Int("attempts-per-row", 20, "random pairing attempts allowed per missing top-up row")
		fs.Bool("strict", false, "fail instead of under-delivering when the top-up target is unreachable")
	})
	if err != nil {
		return StudyResearcherOptions{}, err
	}
	opts := StudyResearcherOptions{
		Common:          c,
		StudiesFile:     v.GetString("studies-file"),
		AltStudiesFile:  v.GetString("alt-studies-file"),
		ResearchersFile: v.GetString("researchers-file"),
		StudyPool:       v.GetInt("study-pool"),
		ResearcherPool:  v.GetInt("researcher-pool"),
		PIPerStudy:      v.GetInt("pi-per-study"),
		RAMin:           v.GetInt("ra-min"),
		RAMax:           v.GetInt("ra-max"),
		AttemptsPerRow:  v.GetInt("attempts-per-row"),
		Strict:          v.GetBool("strict"),
	}
	if opts.PIPerStudy < 1 {
		opts.PIPerStudy = 1
	}
	if opts.RAMin < 0 {
		opts.RAMin = 0
	}
	if opts.RAMax < opts.RAMin {
		opts.RAMax = max(opts.RAMin, 1)
	}
	return opts, checkOptions(opts)
}

// SessionOptions configures the session scheduler.
type SessionOptions struct {
	Common
	StudiesFile      string
	RoomsFile        string
	StudyPool        int `validate:"gte=1"`
	RoomPool         int `validate:"gte=1"`
	PlacementRetries int `validate:"gte=1"`
	Strict           bool
}

// LoadSessions parses options for gen-sessions.
func LoadSessions(args []string) (SessionOptions, error) {
	v, c, err := parseCommon("gen-sessions", args, 500, "sessions.csv", func(fs *pflag.FlagSet) {
		fs.String("studies-file", "study.csv", "optional studies CSV/JSON to draw study ids from")
		fs.String("rooms-file", "rooms.csv", "optional rooms CSV/JSON to schedule into")
		fs.Int("study-pool", 200, "synthesized study pool size when no file is usable")
		fs.Int("room-pool", 80, "synthesized room pool size when no file is usable")
		fs.Int("placement-retries", 20, "placement attempts per session before accepting an overlap")
		fs.Bool("strict", false, "fail instead of accepting an overlapping placement")
	})
	if err != nil {
		return SessionOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return SessionOptions{}, err
	}
	opts := SessionOptions{
		Common:           c,
		StudiesFile:      v.GetString("studies-file"),
		RoomsFile:        v.GetString("rooms-file"),
		StudyPool:        v.GetInt("study-pool"),
		RoomPool:         v.GetInt("room-pool"),
		PlacementRetries: v.GetInt("placement-retries"),
		Strict:           v.GetBool("strict"),
	}
	return opts, checkOptions(opts)
}

// EnrollmentOptions configures the enrollment generator.
type EnrollmentOptions struct {
	Common
	ParticipantsFile string
	SessionsFile     string
	ParticipantPool  int `validate:"gte=1"`
	SessionPool      int `validate:"gte=1"`
	AttemptsPerRow   int `validate:"gte=1"`
	Strict           bool
}

// LoadEnrollments parses options for gen-enrollments.
func LoadEnrollments(args []string) (EnrollmentOptions, error) {
	v, c, err := parseCommon("gen-enrollments", args, 1000, "enrollments.csv", func(fs *pflag.FlagSet) {
		fs.String("participants-file", "participants.csv", "optional participants CSV/JSON to draw ids from")
		fs.String("sessions-file", "sessions.csv", "optional sessions CSV/JSON to enroll into")
		fs.Int("participant-pool", 1200, "synthesized participant pool size when no file is usable")
		fs.Int("session-pool", 400, "synthesized session pool size when no file is usable")
		fs.Int("attempts-per-row", 15, "random pairing attempts allowed per requested row")
		fs.Bool("strict", false, "fail instead of under-delivering when unique pairs run out")
	})
	if err != nil {
		return EnrollmentOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return EnrollmentOptions{}, err
	}
	opts := EnrollmentOptions{
		Common:           c,
		ParticipantsFile: v.GetString("participants-file"),
		SessionsFile:     v.GetString("sessions-file"),
		ParticipantPool:  v.GetInt("participant-pool"),
		SessionPool:      v.GetInt("session-pool"),
		AttemptsPerRow:   v.GetInt("attempts-per-row"),
		Strict:           v.GetBool("strict"),
	}
	return opts, checkOptions(opts)
}

// PaymentOptions configures the payment generator.
type PaymentOptions struct {
	Common
	EnrollmentsFile string
	FallbackPool    int `validate:"gte=1"`
	AttemptsPerRow  int `validate:"gte=1"`
	Strict          bool
}

// LoadPayments parses options for gen-payments.
func LoadPayments(args []string) (PaymentOptions, error) {
	v, c, err := parseCommon("gen-payments", args, 1000, "payments.csv", func(fs *pflag.FlagSet) {
		fs.String("enrollments-file", "enrollments.csv", "optional enrollments CSV/JSON to pay out")
		fs.Int("fallback-pool", 2000, "synthesized enrollment pool size when no file is usable")
		fs.Int("attempts-per-row", 10, "random pairing attempts allowed per requested row")
		fs.Bool("strict", false, "fail instead of under-delivering when unique pairs run out")
	})
	if err != nil {
		return PaymentOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return PaymentOptions{}, err
	}
	opts := PaymentOptions{
		Common:          c,
		EnrollmentsFile: v.GetString("enrollments-file"),
		FallbackPool:    v.GetInt("fallback-pool"),
		AttemptsPerRow:  v.GetInt("attempts-per-row"),
		Strict:          v.GetBool("strict"),
	}
	return opts, checkOptions(opts)
}

// ParticipantConsentOptions configures the consent signature generator.
// When ParticipantsFile and VersionsFile are set the generator signs the
// real consent windows from those files; when both are empty it runs
// fully synthetic against generated pools.
type ParticipantConsentOptions struct {
	Common
	ParticipantsFile string
	VersionsFile     string
	ParticipantPool  int     `validate:"gte=1"`
	VersionPool      int     `validate:"gte=1"`
	WithdrawRate     float64 `validate:"gte=0,lte=1"`
	AllowDuplicates  bool
	AttemptsPerRow   int `validate:"gte=1"`
	Strict           bool
}

// FileDriven reports whether the generator reads real reference files
// instead of synthesizing pools.
func (o ParticipantConsentOptions) FileDriven() bool {
	return o.ParticipantsFile != "" || o.VersionsFile != ""
}

// LoadParticipantConsents parses options for gen-participant-consents.
func LoadParticipantConsents(args []string) (ParticipantConsentOptions, error) {
	v, c, err := parseCommon("gen-participant-consents", args, 1000, "participant_consents.csv", func(fs *pflag.FlagSet) {
		fs.String("participants-file", "", "participants CSV/JSON; required together with versions-file")
		fs.String("versions-file", "", "consent versions CSV/JSON; required together with participants-file")
		fs.Int("participant-pool", 500, "synthesized participant pool size in synthetic mode")
		fs.Int("version-pool", 300, "synthesized consent version pool size in synthetic mode")
		fs.Float64("withdraw-rate", 0.15, "probability a signature is later withdrawn")
		fs.Bool("allow-duplicates", false, "allow multiple rows per (participant, version) pair")
		fs.Int("attempts-per-row", 10, "random pairing attempts allowed per requested row")
		fs.Bool("strict", false, "fail instead of under-delivering when unique pairs run out")
	})
	if err != nil {
		return ParticipantConsentOptions{}, err
	}
	if err := requirePositiveCount(c); err != nil {
		return ParticipantConsentOptions{}, err
	}
	opts := ParticipantConsentOptions{
		Common:           c,
		ParticipantsFile: v.GetString("participants-file"),
		VersionsFile:     v.GetString("versions-file"),
		ParticipantPool:  v.GetInt("participant-pool"),
		VersionPool:      v.GetInt("version-pool"),
		WithdrawRate:     v.GetFloat64("withdraw-rate"),
		AllowDuplicates:  v.GetBool("allow-duplicates"),
		AttemptsPerRow:   v.GetInt("attempts-per-row"),
		Strict:           v.GetBool("strict"),
	}
	if opts.FileDriven() && (opts.ParticipantsFile == "" || opts.VersionsFile == "") {
		return ParticipantConsentOptions{}, fmt.Errorf("participants-file and versions-file must be set together")
	}
	return opts, checkOptions(opts)
}
