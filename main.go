package main

import "github.com/diegomarinho/jabref/cmd/jabref"

func main() {
	jabref.Execute()
}
