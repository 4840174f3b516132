// docx/docx.go

// Package docx renders .docx files from a fixed template. A .docx is a zip
// archive; the visible text lives in word/document.xml. The template file is
// a normal Word document whose body contains text/template directives
// ({{.campo}}, {{if .flag}}...{{end}}, {{range .items}}...{{end}}), which
// covers the conditional sections and list iteration the receipts need.
// Placeholders must be typed into the document in one go so Word keeps each
// one inside a single run.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

const documentEntry = "word/document.xml"

// Template is a parsed .docx template, safe for concurrent Render calls.
type Template struct {
	entries []entry
	tmpl    *template.Template
}

type entry struct {
	name string
	data []byte
}

// Open reads and parses a template from disk.
func Open(path string) (*Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return FromBytes(b)
}

// FromBytes parses a template from an in-memory .docx.
func FromBytes(b []byte) (*Template, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("template is not a valid docx archive: %w", err)
	}

	t := &Template{}
	var docXML []byte
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open template entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read template entry %s: %w", f.Name, err)
		}
		if f.Name == documentEntry {
			docXML = data
		}
		t.entries = append(t.entries, entry{name: f.Name, data: data})
	}
	if docXML == nil {
		return nil, fmt.Errorf("template has no %s entry", documentEntry)
	}

	tmpl, err := template.New(documentEntry).Parse(string(docXML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template body: %w", err)
	}
	t.tmpl = tmpl
	return t, nil
}

// Render substitutes data into the template and returns the finished .docx.
// String values are XML-escaped before substitution so user-entered text
// cannot break the document markup.
func (t *Template) Render(data map[string]interface{}) ([]byte, error) {
	var body bytes.Buffer
	if err := t.tmpl.Execute(&body, escapeValue(data)); err != nil {
		return nil, fmt.Errorf("failed to render document body: %w", err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, e := range t.entries {
		w, err := zw.Create(e.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write entry %s: %w", e.name, err)
		}
		content := e.data
		if e.name == documentEntry {
			content = body.Bytes()
		}
		if _, err := w.Write(content); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write entry %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish docx archive: %w", err)
	}
	return out.Bytes(), nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return xmlEscaper.Replace(val)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = escapeValue(item)
		}
		return out
	case []map[string]interface{}:
		out := make([]map[string]interface{}, len(val))
		for i, item := range val {
			out[i] = escapeValue(item).(map[string]interface{})
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, s := range val {
			out[i] = xmlEscaper.Replace(s)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = escapeValue(item)
		}
		return out
	default:
		return v
	}
}
