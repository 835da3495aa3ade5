package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Directories and extensions that are never scanned.
var (
	excludeDirs = map[string]bool{
		".git":          true,
		"node_modules":  true,
		"__pycache__":   true,
		"venv":          true,
		".venv":         true,
		"dist":          true,
		"build":         true,
		".pytest_cache": true,
		".mypy_cache":   true,
	}
	excludeSuffixes = []string{
		".jpg", ".jpeg", ".png", ".gif", ".pdf", ".zip",
		".tar", ".gz", ".bz2", ".mp4", ".mp3", ".avi",
		// test fixtures routinely carry dummy secrets
		".test.js",
	}
)

// Extra noise skipped when Config.DefaultExcludes is set.
var (
	noisyDirs = map[string]bool{
		"vendor":   true,
		"coverage": true,
		"target":   true,
	}
	noisySuffixes = []string{
		".min.js", ".map", ".webp", ".svg",
		".tgz", ".7z", ".jar", ".class", ".exe", ".dll", ".so",
		".wasm", ".pyc", ".lock",
	}
	noisyNames = map[string]bool{
		"package-lock.json": true,
		"pnpm-lock.yaml":    true,
		".DS_Store":         true,
	}
)

func isDirExcluded(name string, noisy bool) bool {
	return excludeDirs[name] || (noisy && noisyDirs[name])
}

func isFileExcluded(rel string, noisy bool) bool {
	lower := strings.ToLower(rel)
	for _, s := range excludeSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	if !noisy {
		return false
	}
	for _, s := range noisySuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return noisyNames[filepath.Base(rel)]
}

// allowedByGlobs applies comma-separated include and exclude globs. A glob
// matches either the slash path relative to the root or the base name.
func allowedByGlobs(rel string, cfg Config) bool {
	rp := filepath.ToSlash(rel)
	if inc := parseGlobs(cfg.IncludeGlobs); len(inc) > 0 && !matchAny(rp, inc) {
		return false
	}
	if exc := parseGlobs(cfg.ExcludeGlobs); len(exc) > 0 && matchAny(rp, exc) {
		return false
	}
	return true
}

func parseGlobs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAny(p string, globs []string) bool {
	base := filepath.Base(p)
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, p); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
