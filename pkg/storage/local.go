package storage

import (
	"context"
	"strings"
)

// Local serves images from a media URL prefix on the same origin or a static host.
type Local struct {
	mediaURL string
}

func NewLocal(mediaURL string) *Local {
	if strings.TrimSpace(mediaURL) == "" {
		mediaURL = "/media/"
	}
	return &Local{mediaURL: mediaURL}
}

func (l *Local) URL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if IsAbsolute(ref) {
		return ref
	}
	return strings.TrimSuffix(l.mediaURL, "/") + "/" + strings.TrimPrefix(ref, "/")
}

// Ping always succeeds; local media has no remote dependency.
func (l *Local) Ping(context.Context) error {
	return nil
}
