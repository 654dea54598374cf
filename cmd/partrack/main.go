// Package main is the single-binary entrypoint for partrack.
package main

import "github.com/herm409/activity-tracker-app-sub000/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
