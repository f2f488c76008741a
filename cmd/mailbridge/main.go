/*
Package main provides the CLI entry point for mailbridge.
*/
package main

import (
	"fmt"
	"os"

	"github.com/mailbridge/mailbridge/internal/cmd"
	"github.com/mailbridge/mailbridge/pkg/mailer"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if kind := mailer.KindOf(err); kind != mailer.KindUnknown {
			fmt.Fprintf(os.Stderr, "Error (%s): %v\n", kind, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
