package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tableflip.dev/okr/pkg/commands"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})

	if err := commands.New().Execute(); err != nil {
		log.Fatal().Err(err).Msg("error during command execution")
	}
}
