// Command ktsmell finds code smells in Kotlin sources.
package main

import (
	"os"

	"github.com/leapstack-labs/ktsmell/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
