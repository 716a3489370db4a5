// Command delegate sends a task to an LLM provider under an agent role and
// prints the answer.
package main

import (
	"os"

	"github.com/sasanktumpati/delegate/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
