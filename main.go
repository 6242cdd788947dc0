// Command wordlebot suggests guesses for five-letter word games and benchmarks
// its own guessing strategy through self-play.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("wordlebot failed")
		os.Exit(1)
	}
}
