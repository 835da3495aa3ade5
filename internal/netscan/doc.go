// Package netscan probes TCP ports on a host and classifies the services it
// finds. A probe is one bounded connect plus an optional banner read; the
// Scanner fans probes out over a fixed number of workers.
package netscan
