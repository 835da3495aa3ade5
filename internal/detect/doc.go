// Package detect runs the pattern registry over lines of text and yields
// redacted findings lazily.
package detect
