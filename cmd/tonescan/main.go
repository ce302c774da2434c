// Package main provides the entry point for the tonescan CLI.
//
// tonescan scores each line of a text submission with a set of sentiment
// and toxicity engines and renders the results as a table.
//
// Usage:
//
//	tonescan score comments.txt
//	cat comments.txt | tonescan score
//
// See --help for all available options.
package main

// main is the entry point for tonescan.
func main() {
	Execute()
}
