package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
)

// Archive is an opened class archive.
type Archive struct {
	Path string

	zr      *zip.ReadCloser
	entries map[string]*zip.File // binary name → entry
	names   []string
}

// Open opens the archive at path and indexes its class entries.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}

	a := &Archive{
		Path:    path,
		zr:      zr,
		entries: make(map[string]*zip.File),
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		name := BinaryName(f.Name)
		if name == "module-info" || name == "package-info" || strings.HasSuffix(name, ".package-info") {
			continue
		}
		if _, dup := a.entries[name]; dup {
			continue
		}
		a.entries[name] = f
		a.names = append(a.names, name)
	}
	SortCanonical(a.names)

	return a, nil
}

// BinaryName converts an archive entry path ("com/example/Outer$Inner.class")
// to a binary type name ("com.example.Outer$Inner").
func BinaryName(entry string) string {
	name := strings.TrimSuffix(entry, ".class")
	name = strings.ReplaceAll(name, "/", ".")
	return strings.ReplaceAll(name, `\`, ".")
}

// TypeNames returns every type in the archive in canonical order.
func (a *Archive) TypeNames() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Contains reports whether the archive holds the given binary name.
func (a *Archive) Contains(binaryName string) bool {
	_, ok := a.entries[binaryName]
	return ok
}

// ReadClass returns the raw class file bytes for a binary name.
func (a *Archive) ReadClass(binaryName string) ([]byte, error) {
	f, ok := a.entries[binaryName]
	if !ok {
		return nil, fmt.Errorf("class %s not in %s", binaryName, a.Path)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	return data, nil
}

// Close releases the underlying container.
func (a *Archive) Close() error {
	if a == nil || a.zr == nil {
		return nil
	}
	return a.zr.Close()
}
