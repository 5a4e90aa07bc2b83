// Command trivia-loader loads trivia season files (TSV) into the
// season/episode/category/question tables.
//
// Commands:
//
//	load     load season files (all discovered, or one with --season)
//	purge    empty every table and reset ids
//	version  print build information
//
// Database settings come from config.yaml / .env / DB_* variables;
// loader settings from --loader-config or LOADER_* variables.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
