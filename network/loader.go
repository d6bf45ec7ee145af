package network

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/logging"
)

// Resource is a loaded resource.
type Resource struct {
	URL         string
	Content     []byte
	ContentType string
	Charset     string
	StatusCode  int
	Cached      bool
}

// String returns the content as a string.
func (r *Resource) String() string {
	return string(r.Content)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache replaces the response cache.
func WithCache(cache *Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = cache
	}
}

// WithBase sets the base that relative references resolve against.
func WithBase(base string) LoaderOption {
	return func(l *Loader) {
		l.base = base
	}
}

// Loader loads resources from local paths, file, http(s) and data URLs.
type Loader struct {
	client   *Client
	cache    *Cache
	base     string
	maxBytes int64

	mu sync.RWMutex
}

// NewLoader creates a loader that fetches over HTTP with client.
func NewLoader(client *Client, opts ...LoaderOption) *Loader {
	l := &Loader{
		client: client,
		cache:  NewCache(100),
	}
	if client != nil {
		l.maxBytes = client.maxBytes
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetBase sets the base that relative references resolve against. The base
// is a URL or a local directory.
func (l *Loader) SetBase(base string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.base = base
}

// Base returns the current base.
func (l *Loader) Base() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.base
}

// Resolve turns ref into an absolute URL or path using the base.
func (l *Loader) Resolve(ref string) (string, error) {
	base := l.Base()
	switch {
	case IsAbsoluteURL(ref) || filepath.IsAbs(ref):
		return ref, nil
	case IsAbsoluteURL(base):
		return ResolveURL(base, ref)
	case base != "":
		return filepath.Join(base, filepath.FromSlash(ref)), nil
	}
	return ref, nil
}

// Load resolves ref and loads it.
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	resolved, err := l.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, err)
	}
	logging.L().Named("network").Debug("Loading resource.", zap.String("ref", ref), zap.String("resolved", resolved))

	if IsDataURL(resolved) {
		return loadDataURL(resolved)
	}

	scheme := ""
	if IsAbsoluteURL(resolved) {
		u, err := url.Parse(resolved)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", resolved, err)
		}
		scheme = strings.ToLower(u.Scheme)
		if scheme == "file" {
			return l.loadFile(resolved, u.Path)
		}
	}

	switch scheme {
	case "":
		return l.loadFile(resolved, resolved)
	case "http", "https":
		return l.loadHTTP(ctx, resolved)
	}
	return nil, fmt.Errorf("load %q: unsupported scheme %q", resolved, scheme)
}

func loadDataURL(urlStr string) (*Resource, error) {
	d, err := ParseDataURL(urlStr)
	if err != nil {
		return nil, err
	}
	return &Resource{
		URL:         urlStr,
		Content:     d.Data,
		ContentType: d.MediaType,
		Charset:     strings.ToLower(d.Charset),
		StatusCode:  200,
	}, nil
}

func (l *Loader) loadFile(urlStr, path string) (*Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", urlStr, err)
	}
	defer f.Close()

	content, err := readLimited(f, l.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", urlStr, err)
	}
	return &Resource{
		URL:         urlStr,
		Content:     content,
		ContentType: GuessContentType(path),
		StatusCode:  200,
	}, nil
}

func (l *Loader) loadHTTP(ctx context.Context, urlStr string) (*Resource, error) {
	if entry, ok := l.cache.Get(urlStr); ok {
		return responseResource(urlStr, entry.Response, true), nil
	}
	if l.client == nil {
		return nil, fmt.Errorf("load %q: no HTTP client configured", urlStr)
	}

	resp, err := l.client.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("load %q: HTTP %d", urlStr, resp.StatusCode)
	}
	l.cache.Set(urlStr, resp)
	return responseResource(urlStr, resp, false), nil
}

func responseResource(urlStr string, resp *Response, cached bool) *Resource {
	mediaType, charset := ParseContentType(resp.ContentType)
	return &Resource{
		URL:         urlStr,
		Content:     resp.Body,
		ContentType: mediaType,
		Charset:     charset,
		StatusCode:  resp.StatusCode,
		Cached:      cached,
	}
}

// ClearCache clears the response cache.
func (l *Loader) ClearCache() {
	l.cache.Clear()
}
