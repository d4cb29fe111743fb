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
	opts, err := config.LoadEnrollments(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := cli.Logger()
	ctx, stop := cli.SignalContext()
	defer stop()

	participants := refdata.OptionalIDs(opts.ParticipantsFile, refdata.ParticipantIDAliases, logger)
	sessions := refdata.OptionalSessions(opts.SessionsFile, logger)

	rows, err := generator.NewEnrollmentGenerator(opts, participants, sessions, logger).Generate(ctx)
	if err != nil {
		cli.Fail(logger, err)
	}

	format := sink.Resolve(opts.OutFile, opts.JSONOut)
	if err := sink.Write(format, opts.OutFile, rows); err != nil {
		cli.Fail(logger, err)
	}
	logger.Info().Int("rows", len(rows)).Str("path", opts.OutFile).Str("format", string(format)).Msg("fixtures written")
}
