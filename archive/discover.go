// Package archive locates the single class archive a run works on and lists
// the types it contains.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

var (
	// ErrNoArchive is returned when the search list yields no candidate archive.
	ErrNoArchive = errors.New("no archive found to analyse")
	// ErrMultipleArchives is returned when more than one candidate remains.
	ErrMultipleArchives = errors.New("only one archive is supported at a time")
)

// DiscoveryError reports a violated archive precondition together with the
// candidates that were considered.
type DiscoveryError struct {
	Candidates []string
	Err        error
}

func (e *DiscoveryError) Error() string {
	if len(e.Candidates) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, strings.Join(e.Candidates, ", "))
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// defaultExclusions are runtime and IDE entries that are never the archive
// under analysis.
var defaultExclusions = []string{"idea_rt.jar"}

// Discover filters searchList down to exactly one archive. Entries that are
// directories are scanned one level deep for jars. Any entry whose lower-cased
// path ends with one of extraExcludes is dropped along with the built-in
// runtime exclusions.
func Discover(searchList []string, extraExcludes []string) (string, error) {
	jreLib := "jre" + string(filepath.Separator) + "lib" + string(filepath.Separator)
	excludes := append(append([]string{}, defaultExclusions...), extraExcludes...)

	var candidates []string
	for _, entry := range expandEntries(searchList) {
		lower := strings.ToLower(entry)
		if !strings.HasSuffix(lower, ".jar") {
			continue
		}
		if strings.Contains(lower, jreLib) {
			continue
		}
		if hasAnySuffix(lower, excludes) {
			continue
		}
		candidates = append(candidates, entry)
	}
	SortCanonical(candidates)

	switch {
	case len(candidates) == 0:
		return "", &DiscoveryError{Err: ErrNoArchive}
	case len(candidates) > 1:
		return "", &DiscoveryError{Candidates: candidates, Err: ErrMultipleArchives}
	}
	return candidates[0], nil
}

// SplitSearchList splits a classpath-style string on the OS list separator,
// dropping empty elements.
func SplitSearchList(s string) []string {
	var out []string
	for _, p := range filepath.SplitList(s) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func expandEntries(searchList []string) []string {
	var out []string
	for _, entry := range searchList {
		info, err := os.Stat(entry)
		if err != nil || !info.IsDir() {
			out = append(out, entry)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(entry, "*"))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		suf = strings.ToLower(strings.TrimSpace(suf))
		if suf != "" && strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// SortCanonical sorts names in canonical order: case-insensitive lexical
// order with byte order as the tiebreak, so the result never depends on the
// input order.
func SortCanonical(names []string) {
	fold := cases.Fold()
	keys := make(map[string]string, len(names))
	for _, n := range names {
		keys[n] = fold.String(n)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ki, kj := keys[names[i]], keys[names[j]]
		if ki != kj {
			return ki < kj
		}
		return names[i] < names[j]
	})
}
