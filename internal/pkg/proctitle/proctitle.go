// Package proctitle names the server process.
package proctitle

import (
	"errors"
	"os"
	"strings"
)

// ErrEmptyTitle is returned for blank titles.
var ErrEmptyTitle = errors.New("proctitle: empty title")

// Default is the title used by cmd/server.
const Default = "storyshare"

func normalize(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}

func rewriteArgs(title string) {
	if len(os.Args) > 0 {
		os.Args[0] = title
	}
}
