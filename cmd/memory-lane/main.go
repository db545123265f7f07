package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/familylane/memory-lane/memoryservice"
)

func main() {
	if err := memoryservice.Run(); err != nil {
		log.Error().Err(err).Msg("memory-lane exited with error")
		os.Exit(1)
	}
}
