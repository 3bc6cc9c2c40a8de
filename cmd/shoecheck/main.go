// Package main provides the entry point for the shoecheck CLI.
//
// shoecheck verifies a shoe store site: every month page linked from the
// navigation is crawled, each shoe listing is checked for a description,
// a reachable image and a price, and the email reminder form is exercised.
//
// Usage:
//
//	shoecheck check [base-url]
//	shoecheck init
//
// See --help for all available options.
package main

func main() {
	Execute()
}
