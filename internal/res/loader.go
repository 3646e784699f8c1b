// Package res loads the external resources a page can reference, which
// for booklet documents means image sources and font files.
package res

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when a resource path resolves to nothing on
// disk or in any search path.
var ErrNotFound = errors.New("resource not found")

// ResourceType classifies a loaded resource.
type ResourceType int

const (
	// ResourceTypeUnknown is an unknown resource type
	ResourceTypeUnknown ResourceType = iota
	// ResourceTypeImage is an image resource
	ResourceTypeImage
	// ResourceTypeFont is a font resource
	ResourceTypeFont
	// ResourceTypeOther is any other resource
	ResourceTypeOther
)

// Resource is a loaded resource.
type Resource struct {
	URL      string
	Type     ResourceType
	Data     []byte
	MimeType string
}

// IsSVG reports whether the resource holds SVG markup, which needs a
// vector rasterizer rather than a bitmap decoder.
func (r *Resource) IsSVG() bool {
	if r.MimeType == "image/svg+xml" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(r.URL), ".svg")
}

// GetReader returns a reader over the resource data.
func (r *Resource) GetReader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// Loader resolves and caches resources referenced by image elements.
// It accepts local paths, http(s) URLs and data: URLs. Safe for
// concurrent use.
type Loader struct {
	// Base path for resolving relative references
	BaseURL string

	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string

	client *http.Client
}

// NewLoader creates a loader with relative references resolved against
// baseURL.
func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL:     baseURL,
		cache:       make(map[string]*Resource),
		searchPaths: []string{},
		client:      &http.Client{},
	}
}

// AddSearchPath adds a directory consulted when a local path does not
// exist as given.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads a resource from a URL or file path, caching by the string
// given.
func (l *Loader) Load(urlStr string) (*Resource, error) {
	l.cacheLock.RLock()
	if res, ok := l.cache[urlStr]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var res *Resource
	var err error

	if strings.HasPrefix(urlStr, "data:") {
		res, err = parseDataURL(urlStr)
	} else {
		var resolved string
		resolved, err = l.resolveURL(urlStr)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(resolved, "http://") || strings.HasPrefix(resolved, "https://") {
			res, err = l.loadRemote(resolved)
		} else {
			res, err = l.loadLocal(resolved)
		}
	}
	if err != nil {
		return nil, err
	}

	l.cacheLock.Lock()
	l.cache[urlStr] = res
	l.cacheLock.Unlock()

	return res, nil
}

// LoadImage loads a resource and verifies it is an image.
func (l *Loader) LoadImage(urlStr string) (*Resource, error) {
	res, err := l.Load(urlStr)
	if err != nil {
		return nil, err
	}
	if res.Type != ResourceTypeImage {
		return nil, fmt.Errorf("resource is not an image: %s", urlStr)
	}
	return res, nil
}

// LoadFont loads a resource and verifies it is a font.
func (l *Loader) LoadFont(urlStr string) (*Resource, error) {
	res, err := l.Load(urlStr)
	if err != nil {
		return nil, err
	}
	if res.Type != ResourceTypeFont {
		return nil, fmt.Errorf("resource is not a font: %s", urlStr)
	}
	return res, nil
}

// parseDataURL parses a data URL (RFC 2397) and returns a Resource.
// Examples:
//
//	data:image/png;base64,<base64>
//	data:text/plain,Hello%20World
func parseDataURL(u string) (*Resource, error) {
	s := strings.TrimPrefix(u, "data:")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URL")
	}
	meta := parts[0]
	dataPart := parts[1]

	mime := "application/octet-stream"
	isBase64 := false
	if meta != "" {
		// meta can be like: image/png;base64 or text/plain;charset=utf-8
		comps := strings.Split(meta, ";")
		if comps[0] != "" {
			mime = comps[0]
		}
		for _, c := range comps[1:] {
			if strings.EqualFold(strings.TrimSpace(c), "base64") {
				isBase64 = true
			}
		}
	}

	var data []byte
	if isBase64 {
		var err error
		data, err = base64.StdEncoding.DecodeString(dataPart)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
	} else {
		// The non-base64 form is URL-escaped
		if d, derr := url.QueryUnescape(dataPart); derr == nil {
			data = []byte(d)
		} else {
			data = []byte(dataPart)
		}
	}

	r := &Resource{URL: u, Data: data, MimeType: mime}
	r.Type = determineResourceType(mime, "")
	return r, nil
}

// resolveURL resolves a reference relative to the base URL.
func (l *Loader) resolveURL(urlStr string) (string, error) {
	if strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://") {
		return urlStr, nil
	}
	if filepath.IsAbs(urlStr) || l.BaseURL == "" {
		return urlStr, nil
	}

	if !strings.HasPrefix(l.BaseURL, "http://") && !strings.HasPrefix(l.BaseURL, "https://") {
		return filepath.Join(l.BaseURL, urlStr), nil
	}

	baseURL, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", err
	}
	relURL, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(relURL).String(), nil
}

func (l *Loader) loadRemote(urlStr string) (*Resource, error) {
	resp, err := l.client.Get(urlStr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	res := &Resource{
		URL:      urlStr,
		Data:     data,
		MimeType: resp.Header.Get("Content-Type"),
	}
	res.Type = determineResourceType(res.MimeType, urlStr)
	return res, nil
}

func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.loadFromSearchPaths(path)
		}
		return nil, err
	}

	res := &Resource{
		URL:      path,
		Data:     data,
		MimeType: determineMimeType(path),
	}
	res.Type = determineResourceType(res.MimeType, path)
	return res, nil
}

func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	base := filepath.Base(filename)
	for _, searchPath := range l.searchPaths {
		path := filepath.Join(searchPath, base)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		res := &Resource{
			URL:      path,
			Data:     data,
			MimeType: determineMimeType(path),
		}
		res.Type = determineResourceType(res.MimeType, path)
		return res, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
}

// determineMimeType determines the MIME type of a file from its extension.
func determineMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	default:
		return "application/octet-stream"
	}
}

func determineResourceType(mimeType, path string) ResourceType {
	if strings.HasPrefix(mimeType, "image/") {
		return ResourceTypeImage
	}
	if strings.HasPrefix(mimeType, "font/") {
		return ResourceTypeFont
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".tiff", ".tif", ".bmp":
		return ResourceTypeImage
	case ".ttf", ".otf":
		return ResourceTypeFont
	}
	return ResourceTypeOther
}
