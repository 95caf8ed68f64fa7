// Command ppl runs the PPL interpreter CLI (cmd/ppl/cmd).
package main

import (
	"fmt"
	"os"

	"github.com/jeffreyeast/go-ppl/cmd/ppl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
