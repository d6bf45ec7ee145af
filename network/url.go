package network

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ResolveURL resolves ref against base. Absolute references, data URLs and
// an empty base return ref unchanged; an empty ref returns base.
func ResolveURL(base, ref string) (string, error) {
	if ref == "" {
		return base, nil
	}
	if base == "" || IsDataURL(ref) {
		return ref, nil
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference URL: %w", err)
	}
	if refURL.IsAbs() {
		return refURL.String(), nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// IsAbsoluteURL returns true if the URL has a scheme.
func IsAbsoluteURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return u.IsAbs()
}

// IsDataURL returns true if the URL is a data URL.
func IsDataURL(urlStr string) bool {
	return len(urlStr) >= 5 && strings.EqualFold(urlStr[:5], "data:")
}

// DataURL is a parsed data URL.
type DataURL struct {
	MediaType string
	Charset   string
	Base64    bool
	Data      []byte
}

// ParseDataURL parses data:[<mediatype>][;base64],<data>.
func ParseDataURL(urlStr string) (*DataURL, error) {
	if !IsDataURL(urlStr) {
		return nil, fmt.Errorf("not a data URL")
	}

	metadata, data, ok := strings.Cut(urlStr[5:], ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL: missing comma")
	}

	result := &DataURL{
		MediaType: "text/plain",
		Charset:   "US-ASCII",
	}
	for i, part := range strings.Split(metadata, ";") {
		switch {
		case part == "base64":
			result.Base64 = true
		case strings.HasPrefix(strings.ToLower(part), "charset="):
			result.Charset = part[len("charset="):]
		case i == 0 && part != "":
			result.MediaType = strings.ToLower(part)
		}
	}

	if result.Base64 {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("decode base64 data: %w", err)
		}
		result.Data = decoded
		return result, nil
	}

	decoded, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	result.Data = []byte(decoded)
	return result, nil
}

// GuessContentType guesses a media type from the extension of a URL or
// path.
func GuessContentType(ref string) string {
	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js", ".mjs":
		return "text/javascript"
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}
