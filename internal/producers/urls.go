package producers

import (
	"net/url"
	"strings"

	"github.com/angelmondragon/producers-backend/pkg/storage"
)

// URLBuilder turns stored image references into absolute URLs for one request.
type URLBuilder struct {
	// Origin is the scheme and host of the request, e.g. https://api.example.pt.
	Origin   string
	Resolver storage.Resolver
}

// Resolve returns the absolute URL for ref, or nil when there is no image or no
// origin to anchor a relative URL to.
func (b URLBuilder) Resolve(ref *string) *string {
	if ref == nil {
		return nil
	}
	raw := strings.TrimSpace(*ref)
	if raw == "" {
		return nil
	}
	if b.Resolver != nil {
		raw = b.Resolver.URL(raw)
		if raw == "" {
			return nil
		}
	}
	if storage.IsAbsolute(raw) {
		return &raw
	}

	base := b.base()
	if base == nil {
		return nil
	}
	rel, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(rel).String()
	return &resolved
}

// Absolute anchors a request path (with query) to the origin.
func (b URLBuilder) Absolute(requestURI string) *url.URL {
	base := b.base()
	if base == nil {
		return nil
	}
	rel, err := url.Parse(requestURI)
	if err != nil {
		return nil
	}
	return base.ResolveReference(rel)
}

func (b URLBuilder) base() *url.URL {
	origin := strings.TrimSpace(b.Origin)
	if origin == "" {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u
}
