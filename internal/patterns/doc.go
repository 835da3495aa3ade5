// Package patterns holds the secret-detection rule tables and the immutable
// registry built from them. Rules are data: adding a detector means adding a
// Def to a group (or to a custom patterns file), never new matching code.
package patterns
