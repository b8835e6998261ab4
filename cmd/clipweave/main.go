// Command clipweave pairs product and selfie recordings by identity, slices
// each input into fixed-length segments, and weaves matching segments into
// side-by-side composite clips.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "clipweave:", err)
		}
		os.Exit(1)
	}
}
