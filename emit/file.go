// Package emit renders the bridge model into PHP stubs, JPHP adapter
// classes and the extension that registers them.
//
// Emitters are pure: they read only the model and return Files. Writing is
// left to a Writer.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jtj.emit")

// File is one generated source unit.
type File struct {
	Path   string // slash-separated, relative to the output root
	Data   []byte
	Source string // binary name of the Java type it came from, if any
}

// Writer materialises files under Root, one at a time.
type Writer struct {
	Root string
}

// Write creates f under the root, creating parent directories, and returns
// the path written.
func (w Writer) Write(f File) (string, error) {
	if f.Path == "" || strings.HasPrefix(f.Path, "/") || strings.Contains(f.Path, "..") {
		return "", fmt.Errorf("refusing to write %q outside %s", f.Path, w.Root)
	}
	path := filepath.Join(w.Root, filepath.FromSlash(f.Path))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	log.Debugf("wrote %s", path)
	return path, nil
}

// WriteAll writes files in order, calling done after each one. It stops at
// the first error.
func (w Writer) WriteAll(files []File, done func(path string)) error {
	for _, f := range files {
		path, err := w.Write(f)
		if err != nil {
			return err
		}
		if done != nil {
			done(path)
		}
	}
	return nil
}

// argList renders "$arg1, $arg2" style positional names.
func argList(n int, prefix string) string {
	args := make([]string, n)
	for i := range args {
		args[i] = fmt.Sprintf("%sarg%d", prefix, i+1)
	}
	return strings.Join(args, ", ")
}
