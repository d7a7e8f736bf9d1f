// Command gate-agent runs the airline gate agent and manages its settings.
package main

import "os"

// main is the program entry point.
func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
