// Command nanoenum defines enumerations, keeps their serialized form in a
// catalog file and computes and decodes bitmasks against them.
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := NewCLI()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
