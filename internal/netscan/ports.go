package netscan

import (
	"strconv"
	"strings"
)

func checkRange(target string, start, end int) error {
	if start < 1 || end > 65535 {
		return invalid(target, "port range %d-%d outside 1-65535", start, end)
	}
	if start > end {
		return invalid(target, "port range start %d is after end %d", start, end)
	}
	return nil
}

// ParseRange parses "start-end".
func ParseRange(spec string) (start, end int, err error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(spec), "-")
	if !ok {
		return 0, 0, invalid(spec, "expected start-end")
	}
	if start, err = strconv.Atoi(strings.TrimSpace(lo)); err != nil {
		return 0, 0, invalid(spec, "bad start port")
	}
	if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
		return 0, 0, invalid(spec, "bad end port")
	}
	if err := checkRange(spec, start, end); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParsePorts parses a comma list of ports and ranges, e.g. "22,80,8000-8010".
// Duplicates are kept; Scan removes them.
func ParsePorts(spec string) ([]int, error) {
	var out []int
	for item := range strings.SplitSeq(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "-") {
			lo, hi, err := ParseRange(item)
			if err != nil {
				return nil, err
			}
			for p := lo; p <= hi; p++ {
				out = append(out, p)
			}
			continue
		}
		p, err := strconv.Atoi(item)
		if err != nil {
			return nil, invalid(spec, "bad port %q", item)
		}
		if p < 1 || p > 65535 {
			return nil, invalid(spec, "port %d out of range 1-65535", p)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, invalid(spec, "no ports given")
	}
	return out, nil
}
