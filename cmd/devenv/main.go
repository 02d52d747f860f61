// cmd/devenv/main.go
package main

import (
	"os"

	"github.com/cmwen/mcp-dev-env-setup/internal/cli"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Execute(cli.Deps{
		Version: version,
		Commit:  commit,
		Date:    date,
	}))
}
