// Package loader extracts plain text from uploaded case documents so it
// can be fed into analysis and graph enrichment prompts.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the raw bytes of a stored document by its storage key.
type Fetcher func(ctx context.Context, key string) ([]byte, error)

// Loader fetches documents and extracts their text content. Extracted text
// is cached per storage key; concurrent requests for the same key share a
// single fetch.
type Loader struct {
	fetch Fetcher

	cache   map[string]string
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// New creates a Loader backed by the given fetcher.
func New(fetch Fetcher) *Loader {
	return &Loader{
		fetch: fetch,
		cache: make(map[string]string),
	}
}

// Text returns the extracted text of the document stored under key.
// fileName decides the extraction strategy by extension.
func (l *Loader) Text(ctx context.Context, key string, fileName string) (string, error) {
	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := l.fetch(ctx, key)
		if err != nil {
			return "", err
		}

		text, err := Extract(fileName, content)
		if err != nil {
			return "", err
		}

		l.cacheMu.Lock()
		l.cache[key] = text
		l.cacheMu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// Extract converts a document's raw bytes into plain text based on the
// file extension. Supported: .txt, .md, .pdf, .docx.
func Extract(fileName string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".txt", ".md":
		return strings.TrimSpace(string(content)), nil
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDocx(content)
	default:
		return "", fmt.Errorf("unsupported document type %q", ext)
	}
}
