package detect

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// MaxLineBytes is the longest line Lines accepts before reporting an error.
const MaxLineBytes = 1 << 20

// Line is one line of scanned content. Number is 1-based.
type Line struct {
	Number int
	Text   string
}

// Lines splits r into lines. Invalid UTF-8 bytes are dropped. A read failure,
// including a line longer than MaxLineBytes, is yielded once as an error and
// ends the sequence.
func Lines(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
		n := 0
		for sc.Scan() {
			n++
			if !yield(Line{Number: n, Text: strings.ToValidUTF8(sc.Text(), "")}, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Line{}, err)
		}
	}
}

// StringLines is Lines over an in-memory string.
func StringLines(s string) iter.Seq2[Line, error] {
	return Lines(strings.NewReader(s))
}
