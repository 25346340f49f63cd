// Command fix-doc-paths rewrites the relocated documentation path across the
// configured workflow tree. It runs the fix-paths tool with configuration
// from config.yaml, .env, and DOCMAINT_* environment variables.
package main

import (
	"fmt"
	"os"

	"github.com/temirov/docmaint/cmd/cli"
)

const exitErrorTemplateConstant = "%v\n"

func main() {
	if executionError := cli.ExecuteCommand(cli.FixPathsCommandName, os.Args[1:]); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
