package archive

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// IsDocument reports whether name looks like an (X)HTML document which may
// carry <style> elements.
func IsDocument(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".html", ".htm":
		return true
	}
	return false
}

// EmbeddedStyles calls fn for the text of every <style> element in an
// (X)HTML document whose type is absent or text/css. Stylesheets are named
// "name#styleN", N counting from 1 in document order.
func EmbeddedStyles(name string, data []byte, fn SourceFunc) error {
	doc := etree.NewDocument()
	// EPUB content is XHTML in theory, tag soup with HTML entities and
	// legacy encodings in practice
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        xml.HTMLEntity,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("unable to parse '%s': %w", name, err)
	}

	var n int
	for _, style := range doc.FindElements("//style") {
		if t := strings.TrimSpace(style.SelectAttrValue("type", "")); t != "" && !strings.EqualFold(t, "text/css") {
			continue
		}
		n++
		if err := fn(fmt.Sprintf("%s#style%d", name, n), []byte(style.Text())); err != nil {
			return err
		}
	}
	return nil
}
