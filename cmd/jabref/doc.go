// Package jabref provides the command-line interface for the jabref tool.
// It configures subcommands (check, completion), parses flags, and executes
// the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/diegomarinho/jabref/cmd/jabref"
//	func main() { jabref.Execute() }
package jabref
