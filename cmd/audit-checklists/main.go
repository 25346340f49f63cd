// Command audit-checklists audits and regenerates the Output Artifacts
// checklists of the configured workflow tree. It runs the audit-checklists
// tool with configuration from config.yaml, .env, and DOCMAINT_* environment
// variables.
package main

import (
	"fmt"
	"os"

	"github.com/temirov/docmaint/cmd/cli"
)

const exitErrorTemplateConstant = "%v\n"

func main() {
	if executionError := cli.ExecuteCommand(cli.AuditChecklistsCommandName, os.Args[1:]); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
