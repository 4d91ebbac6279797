// Package shard embeds shadow trees in a UI surface: it parses documents,
// builds trees off the UI goroutine, lays them out when the surface size
// or the tree changes, and routes actions to named handlers.
package shard

import (
	"fmt"
	"strings"

	"github.com/go-drift/shard/pkg/props"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the document major version this engine reads.
const SupportedMajor = "v1"

// Document is a parsed document envelope.
type Document struct {
	// Version is the declared document version, empty when absent.
	Version string
	// Root is the {kind, props} description of the tree. It is Null when
	// the document carries only an error.
	Root props.Value
	// Error is a server-provided message explaining a missing root.
	Error string
}

// DocumentError is reported when a document carries an error instead of a
// root.
type DocumentError struct {
	Message string
}

func (e *DocumentError) Error() string {
	return "document error: " + e.Message
}

// ParseDocument validates the envelope {version?, root?, error?}. A value
// without any of these keys but with a kind is accepted as a bare root.
func ParseDocument(v props.Value) (*Document, error) {
	if !v.Get("kind").IsNull() && v.Get("root").IsNull() {
		return &Document{Root: v}, nil
	}
	r := props.NewReader("document", v)
	doc := &Document{}
	if version, ok := r.String("version"); ok {
		if !compatible(version) {
			r.Fail("version", v.Get("version"), "want semantic version "+SupportedMajor+".x")
		}
		doc.Version = version
	}
	doc.Error, _ = r.String("error")
	if r.Has("root") {
		r.RequiredObject("root")
		doc.Root = v.Get("root")
	} else if doc.Error == "" {
		r.Require("root")
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseJSON decodes and validates a JSON document.
func ParseJSON(data []byte) (*Document, error) {
	v, err := props.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return ParseDocument(v)
}

// ParseYAML decodes and validates a YAML document.
func ParseYAML(data []byte) (*Document, error) {
	v, err := props.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return ParseDocument(v)
}

// Err returns a DocumentError when the document has no root.
func (d *Document) Err() error {
	if d.Root.IsNull() {
		return &DocumentError{Message: d.Error}
	}
	return nil
}

func compatible(version string) bool {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.IsValid(v) && semver.Major(v) == SupportedMajor
}
