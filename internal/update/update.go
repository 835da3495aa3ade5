// Package update checks GitHub for newer freesscan releases and replaces
// the running binary on request.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

const (
	// Slug is the GitHub owner/repo releases are published under.
	Slug = "cer4sco/freesscan"

	latestURL     = "https://api.github.com/repos/" + Slug + "/releases/latest"
	cacheFileName = "update.json"
	cacheTTL      = 24 * time.Hour
)

type cache struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
}

// Checker looks up the latest release, caching the answer on disk.
type Checker struct {
	URL    string
	Client *http.Client
	Dir    string // cache directory; empty disables caching
	Now    func() time.Time
}

// NewChecker returns a Checker against the public releases API with the
// cache stored next to the global config file.
func NewChecker() *Checker {
	return &Checker{
		URL:    latestURL,
		Client: &http.Client{Timeout: 2 * time.Second},
		Dir:    configDir(),
		Now:    time.Now,
	}
}

func configDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "freesscan")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "freesscan")
}

func (c *Checker) loadCache() (cache, error) {
	var ca cache
	if c.Dir == "" {
		return ca, errors.New("no cache dir")
	}
	b, err := os.ReadFile(filepath.Join(c.Dir, cacheFileName))
	if err != nil {
		return ca, err
	}
	err = json.Unmarshal(b, &ca)
	return ca, err
}

func (c *Checker) saveCache(ca cache) {
	if c.Dir == "" {
		return
	}
	_ = os.MkdirAll(c.Dir, 0o755)
	b, _ := json.MarshalIndent(ca, "", "  ")
	_ = os.WriteFile(filepath.Join(c.Dir, cacheFileName), b, 0o644)
}

func (c *Checker) latestOnline(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "freesscan-updater")
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup: %s", resp.Status)
	}
	var obj struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", err
	}
	if obj.TagName != "" {
		return obj.TagName, nil
	}
	return obj.Name, nil
}

// Check returns the latest known version and whether it is newer than
// current. It is a no-op in CI and never fails the caller on network errors.
func (c *Checker) Check(ctx context.Context, current string) (string, bool) {
	if os.Getenv("CI") != "" {
		return "", false
	}
	ca, _ := c.loadCache()
	latest := ca.Latest
	if latest == "" || c.Now().Sub(ca.LastChecked) > cacheTTL {
		if v, err := c.latestOnline(ctx); err == nil {
			latest = v
			c.saveCache(cache{LastChecked: c.Now(), Latest: v})
		}
	}
	return latest, Newer(latest, current)
}

// Newer reports whether latest is a strictly greater version than current.
// Unparseable versions are never newer.
func Newer(latest, current string) bool {
	l, err := semver.ParseTolerant(latest)
	if err != nil {
		return false
	}
	c, err := semver.ParseTolerant(current)
	if err != nil {
		return false
	}
	return l.GT(c)
}

// Resolve falls back to the VCS revision when no version was stamped at
// build time.
func Resolve(version string) string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

// SelfUpdate replaces the running executable with the latest release and
// returns the version installed.
func SelfUpdate(current string) (string, error) {
	ver, err := semver.ParseTolerant(current)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), Slug)
	if err != nil {
		return "", fmt.Errorf("self-update: %w", err)
	}
	return latest.Version.String(), nil
}
