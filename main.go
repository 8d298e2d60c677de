// The main package for the summarybot executable.
package main

import (
	"github.com/fedisum/summarybot/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
