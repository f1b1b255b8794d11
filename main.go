// Package main is the entry point for the loxtest CLI application.
//
// loxtest builds the interpreter under test and runs it against the test
// corpus, reporting which cases passed and which did not.
package main

import "github.com/ajxudir/loxtest/cmd"

// main delegates flag parsing and the whole run to the cmd package.
func main() {
	cmd.Execute()
}
