// Package storage persists uploaded images outside the relational store.
package storage

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("storage: invalid object key")

// Store is a flat key/value blob store addressed by slash-separated keys.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL returns the public address of key.
	URL(key string) string
}

// NewKey builds a collision-resistant key under prefix keeping ext.
func NewKey(prefix, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" || len(ext) > 5 {
		ext = "bin"
	}
	return normalizeKey(prefix + "/" + strings.ReplaceAll(uuid.NewString(), "-", "") + "." + ext)
}

// normalizeKey cleans a key and rejects traversal outside the store root.
func normalizeKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if key == "" {
		return ""
	}
	cleaned := path.Clean("/" + key)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return ""
	}
	return cleaned
}

// DeleteAll removes every key, returning the first error.
func DeleteAll(ctx context.Context, s Store, keys []string) error {
	var first error
	for _, k := range keys {
		if k == "" {
			continue
		}
		if err := s.Delete(ctx, k); err != nil && first == nil {
			first = err
		}
	}
	return first
}
