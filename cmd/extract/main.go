// Package main implements the extract CLI, which prints the action items of a
// transcript as JSON.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
