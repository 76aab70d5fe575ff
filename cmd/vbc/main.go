// Command vbc loads competition documents and derives their results.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/vbc/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands report their own failures; anything else is a cobra
		// usage error that has not been printed yet.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
