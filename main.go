package main

import "midiextract/cmd"

func main() {
	// Execute exits non-zero on usage and fatal errors.
	cmd.Execute()
}
