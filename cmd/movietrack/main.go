// Command movietrack is the command-line interface to the movie
// collection: batch adds, listing, ranked-subset management, and clearing.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
