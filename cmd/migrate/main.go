// Command migrate applies or rolls back the relational schema
// (spec.md §3) against the configured database.
package main

import (
	"fmt"
	"os"

	"github.com/resonate/core/internal/config"
	"github.com/resonate/core/internal/migrations"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate [up|down]")
		os.Exit(2)
	}

	cfg, err := config.Load(os.Getenv("RESONATE_CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: load config: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "up":
		err = migrations.Up(cfg.Database.DSN)
	case "down":
		err = migrations.Down(cfg.Database.DSN)
	default:
		fmt.Fprintf(os.Stderr, "migrate: unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}
