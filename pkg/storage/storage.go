package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/angelmondragon/producers-backend/pkg/config"
	"github.com/angelmondragon/producers-backend/pkg/logger"
)

// Resolver maps stored image references to public URLs.
type Resolver interface {
	// URL returns an absolute URL or a path relative to the request origin.
	// Empty references resolve to "".
	URL(ref string) string
	Ping(ctx context.Context) error
}

// New builds the resolver selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case config.StorageLocal, "":
		return NewLocal(cfg.MediaURL), nil
	case config.StorageS3:
		client, err := NewS3(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if logg != nil {
			logg.Info(ctx, "s3 image storage configured")
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}

// IsAbsolute reports whether ref already is a full URL.
func IsAbsolute(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func joinKey(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}
