package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var BUILD_VERSION = "dev"

func main() {
	// a missing .env is fine, settings can come from the environment
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "webjump:", err)
		os.Exit(1)
	}
}
