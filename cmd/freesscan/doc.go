// Package freesscan provides the command-line interface for freesscan. It
// wires the secret and port engines to config files, reporters and result
// stores.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/cer4sco/freesscan/cmd/freesscan"
//	func main() { os.Exit(freesscan.Execute()) }
package freesscan
