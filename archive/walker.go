// Package archive locates stylesheets in files, directories and zip
// containers such as EPUB books.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SourceFunc is called for every stylesheet found. Name is either a file
// path or "container!entry" for stylesheets inside zip containers. If an
// error is returned, processing stops.
type SourceFunc func(name string, data []byte) error

// WalkFunc is the type of the function called for each matching file in
// container visited by Walk.
type WalkFunc func(container string, file *zip.File) error

// IsStylesheet reports whether name looks like a CSS file.
func IsStylesheet(name string) bool {
	return strings.EqualFold(path.Ext(name), ".css")
}

// IsContainer reports whether name looks like a zip container we can look into.
func IsContainer(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip", ".epub", ".kepub":
		return true
	}
	return false
}

// Walk visits all files in the container which satisfy match, calling walkFn
// for each item. Entries with path traversal components ("..") or absolute
// paths make Walk fail.
func Walk(container string, match func(name string) bool, walkFn WalkFunc) error {
	r, err := zip.OpenReader(container)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && match(name) {
			if err := walkFn(container, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sources expands source into stylesheets: a file is passed as is, a
// directory is searched recursively (symbolic links are not followed) and a
// zip container is searched for entries with css extension. (X)HTML
// documents, standalone or inside containers, contribute their <style>
// elements.
func Sources(source string, fn SourceFunc) error {
	fi, err := os.Stat(source)
	if err != nil {
		return err
	}

	switch {
	case fi.IsDir():
		return filepath.WalkDir(source, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if IsStylesheet(p) || IsDocument(p) {
				return readFile(p, fn)
			}
			if IsContainer(p) {
				return Sources(p, fn)
			}
			return nil
		})
	case IsContainer(source):
		match := func(name string) bool { return IsStylesheet(name) || IsDocument(name) }
		return Walk(source, match, func(container string, file *zip.File) error {
			data, err := readEntry(file)
			if err != nil {
				return fmt.Errorf("unable to read '%s' from '%s': %w", file.Name, container, err)
			}
			name := container + "!" + file.Name
			if IsDocument(file.Name) {
				return EmbeddedStyles(name, data, fn)
			}
			return fn(name, data)
		})
	default:
		return readFile(source, fn)
	}
}

func readFile(name string, fn SourceFunc) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if IsDocument(name) {
		return EmbeddedStyles(name, data, fn)
	}
	return fn(name, data)
}

func readEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
