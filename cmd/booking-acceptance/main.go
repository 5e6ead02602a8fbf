package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/celestiaorg/booking-acceptance/cmd/booking-acceptance/commands"
)

func main() {
	// A local .env is optional; values from it never override the real environment
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
