// Package engine enumerates scannable files under a target and runs the
// secret detector over them in parallel. Port scanning lives in netscan;
// this package only deals with file trees.
package engine
