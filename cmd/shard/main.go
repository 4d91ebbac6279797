// Command shard builds, lays out and checks shard documents from the
// command line.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/shard/cmd/shard/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
