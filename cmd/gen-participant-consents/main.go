package main

import (
	"log"
	"os"

	"github.com/studyflow/fixturegen/internal/cli"
	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/generator"
	"github.com/studyflow/fixturegen/internal/refdata"
	"github.com/studyflow/fixturegen/internal/sink"
)

func main() {
	opts, err := config.LoadParticipantConsents(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := cli.Logger()
	ctx, stop := cli.SignalContext()
	defer stop()

	// In file-driven mode both inputs are hard requirements; anything
	// unreadable or empty stops the run before output is touched.
	var participants []string
	var versions []refdata.VersionRef
	if opts.FileDriven() {
		participants, err = refdata.RequiredIDs(opts.ParticipantsFile, refdata.ParticipantIDAliases)
		if err != nil {
			cli.Fail(logger, err)
		}
		versions, err = refdata.LoadConsentVersions(opts.VersionsFile)
		if err != nil {
			cli.Fail(logger, err)
		}
	}

	rows, err := generator.NewConsentGenerator(opts, participants, versions, logger).Generate(ctx)
	if err != nil {
		cli.Fail(logger, err)
	}

	format := sink.Resolve(opts.OutFile, opts.JSONOut)
	if err := sink.Write(format, opts.OutFile, rows); err != nil {
		cli.Fail(logger, err)
	}
	logger.Info().Int("rows", len(rows)).Str("path", opts.OutFile).Str("format", string(format)).Msg("fixtures written")
}
