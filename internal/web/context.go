package web

import (
	"net/http"

	"github.com/JonMunkholm/salesdesk/internal/core"
)

// requestMetadata puts the client IP and User-Agent on the request context
// so service operations can log who triggered them.
func requestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithIPAddress(r.Context(), r.RemoteAddr)
		ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
