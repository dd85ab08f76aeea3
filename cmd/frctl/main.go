// Command frctl drives the FirstResponse tools from a terminal. Its session
// lives in a local file, so a login survives between invocations.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
