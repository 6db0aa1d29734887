package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"payrolld/internal/requestctx"
)

// RequestID propagates an incoming X-Request-ID or mints one, echoing it on
// the response so callers can correlate sheet-generation requests with logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
