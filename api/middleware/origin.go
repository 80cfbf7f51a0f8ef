package middleware

import (
	"net/http"
	"strings"
)

const forwardedProtoHeader = "X-Forwarded-Proto"

// Origin records the public origin of each request. A configured base URL wins;
// otherwise the scheme comes from X-Forwarded-Proto or TLS and the host from Host.
func Origin(publicBaseURL string) func(http.Handler) http.Handler {
	configured := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := configured
			if origin == "" {
				origin = requestOrigin(r)
			}
			next.ServeHTTP(w, r.WithContext(WithOrigin(r.Context(), origin)))
		})
	}
}

func requestOrigin(r *http.Request) string {
	if r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get(forwardedProtoHeader); proto != "" {
		proto = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
		if proto == "http" || proto == "https" {
			scheme = proto
		}
	}
	return scheme + "://" + r.Host
}
