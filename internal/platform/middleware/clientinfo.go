package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// ClientInfo is the coarse client description extracted from the User-Agent
// header, carried in the request context for logging.
type ClientInfo struct {
	Browser string
	OS      string
	Mobile  bool
}

type clientInfoKey struct{}

// WithClientInfo parses the User-Agent header once per request and injects
// the result into the context. It never rejects a request; an absent or
// unparseable User-Agent simply yields no client info.
func WithClientInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		ua := useragent.New(raw)
		browser, _ := ua.Browser()
		info := ClientInfo{
			Browser: strings.ToLower(strings.TrimSpace(browser)),
			OS:      strings.ToLower(strings.TrimSpace(ua.OS())),
			Mobile:  ua.Mobile(),
		}
		if info.Browser == "" {
			info.Browser = "unknown"
		}
		if info.OS == "" {
			info.OS = "unknown"
		}

		ctx := context.WithValue(r.Context(), clientInfoKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientInfo retrieves the parsed client info, if any, from the context.
func GetClientInfo(ctx context.Context) (ClientInfo, bool) {
	info, ok := ctx.Value(clientInfoKey{}).(ClientInfo)
	return info, ok
}
