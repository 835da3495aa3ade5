// Package ignore loads .freesscanignore files, which use gitignore syntax.
package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileName is the per-tree ignore file read from the scan root.
const FileName = ".freesscanignore"

// Matcher reports whether a slash-separated path relative to the scan root
// is ignored. The zero value ignores nothing.
type Matcher struct {
	gi *gitignore.GitIgnore
}

// Load compiles the ignore file at path. A missing file yields an empty
// matcher and no error.
func Load(path string) (Matcher, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Matcher{}, nil
	}
	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{gi: gi}, nil
}

// LoadRoot loads FileName from a scan root.
func LoadRoot(root string) (Matcher, error) {
	return Load(filepath.Join(root, FileName))
}

func (m Matcher) Match(rel string) bool {
	if m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(filepath.ToSlash(rel))
}
