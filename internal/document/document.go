// Package document provides a typed, mutable view over a Microsoft Project
// XML interchange tree. All checks and repairs in this module go through the
// accessors and mutation operations defined here rather than walking the raw
// tree, so the underlying DOM representation stays an implementation detail.
package document

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// Namespace is the default namespace of MS Project XML documents.
const Namespace = "http://schemas.microsoft.com/project"

// ErrMalformed indicates the input is not a well-formed MS Project document.
// It is the only fatal condition in the engine: no checks run against a
// document that fails to load.
var ErrMalformed = errors.New("malformed project document")

// Document wraps a parsed MS Project XML tree.
type Document struct {
	xml  *etree.Document
	root *etree.Element
}

// Load parses the file at path into a Document.
func Load(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return wrap(doc)
}

// Parse parses raw XML bytes into a Document.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return wrap(doc)
}

func wrap(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrMalformed)
	}
	if root.Tag != "Project" {
		return nil, fmt.Errorf("%w: root element is <%s>, expected <Project>", ErrMalformed, root.Tag)
	}
	if ns := root.SelectAttrValue("xmlns", ""); ns != Namespace {
		return nil, fmt.Errorf("%w: root namespace is %q, expected %q", ErrMalformed, ns, Namespace)
	}
	return &Document{xml: doc, root: root}, nil
}

// Project returns the single project entity at the document root.
func (d *Document) Project() Project {
	return Project{el: d.root}
}

// WriteFile serializes the (possibly repaired) tree to path.
func (d *Document) WriteFile(path string) error {
	d.xml.Indent(2)
	if err := d.xml.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Bytes serializes the tree and returns the raw XML.
func (d *Document) Bytes() ([]byte, error) {
	d.xml.Indent(2)
	data, err := d.xml.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}
