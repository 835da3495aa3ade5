package detect

import "strings"

const directive = "freesscan:"

// suppressor tracks inline ignore directives across lines:
//
//	freesscan:ignore             skip this line
//	freesscan:ignore-next-line   skip the following line
//	freesscan:ignore-start       skip until freesscan:ignore-end
type suppressor struct {
	region   bool
	skipNext bool
}

func hasDirective(t, name string) bool {
	return strings.Contains(t, directive+name) || strings.Contains(t, "freesscan: "+name)
}

// skip reports whether the line must not be matched.
func (s *suppressor) skip(t string) bool {
	if !strings.Contains(t, "freesscan") {
		if s.skipNext {
			s.skipNext = false
			return true
		}
		return s.region
	}
	switch {
	case hasDirective(t, "ignore-start"):
		s.region = true
		return true
	case hasDirective(t, "ignore-end"):
		s.region = false
		return true
	case s.region:
		return true
	case hasDirective(t, "ignore-next-line"):
		s.skipNext = true
		return true
	case s.skipNext:
		s.skipNext = false
		return true
	case hasDirective(t, "ignore"):
		return true
	}
	return false
}
