package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chrisuehlinger/htmlkit/component"
	"github.com/chrisuehlinger/htmlkit/dom"
	"github.com/chrisuehlinger/htmlkit/html"
)

// LoadDocument loads and parses an HTML document. The document's URL
// becomes the loader base so its relative references resolve.
func (l *Loader) LoadDocument(ctx context.Context, ref string) (*dom.Document, error) {
	res, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	doc, err := html.ParseReader(bytes.NewReader(res.Content))
	if err != nil {
		return nil, fmt.Errorf("load document %q: %w", ref, err)
	}
	l.SetBase(baseOf(res.URL))
	return doc, nil
}

// LoadDescriptors loads a YAML descriptor file.
func (l *Loader) LoadDescriptors(ctx context.Context, ref string) ([]component.Descriptor, error) {
	res, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	ds, err := component.LoadDescriptors(bytes.NewReader(res.Content))
	if err != nil {
		return nil, fmt.Errorf("load descriptors %q: %w", ref, err)
	}
	return ds, nil
}

// Script is the source of an external script.
type Script struct {
	URL     string
	Content string
}

// LoadScripts loads the external scripts a document references, in
// document order. A script that fails to load is skipped and its error is
// joined into the returned error.
func (l *Loader) LoadScripts(ctx context.Context, doc *dom.Document) ([]Script, error) {
	var scripts []Script
	var errs []error
	for _, r := range html.Resources(doc) {
		if r.Kind != "script" {
			continue
		}
		res, err := l.Load(ctx, r.URL)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scripts = append(scripts, Script{URL: res.URL, Content: res.String()})
	}
	return scripts, errors.Join(errs...)
}

// baseOf returns the base for references inside a resource: the URL itself
// or the directory of a local path.
func baseOf(loc string) string {
	if IsAbsoluteURL(loc) {
		return loc
	}
	return filepath.Dir(loc)
}
