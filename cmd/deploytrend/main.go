// deploytrend - deployment cadence from chat history
//
// deploytrend reads a chat export, finds the deployment notices posted after
// each DeployBot line, and reports how often deployments happen.
package main

import (
	"os"

	"github.com/jamus9/KSA-Version-History/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
