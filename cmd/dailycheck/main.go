// Package main is the single-binary entrypoint for Daily Check.
// One binary: CLI commands and the local API server.
package main

import "github.com/dailycheck-app/dailycheck/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
