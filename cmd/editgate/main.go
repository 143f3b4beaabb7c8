package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/abdidvp/editgate/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "editgate:", err)
		os.Exit(1)
	}
}
