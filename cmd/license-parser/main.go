// Command license-parser validates a Palimpsest licence bundle: the licence
// text (with an optional Dutch translation), its AIBDP manifest and a
// synthetic lineage tag, and prints a compliance report.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		}
		os.Exit(1)
	}
}
