package graphql

import (
	"context"
	"net/http"
)

type contextKeyType string

const responseWriterKey contextKeyType = "responseWriter"

// WithResponseWriter stashes the response writer in the context so mutations
// that manage the token cookie (signinUser, logoutUser) can reach it.
func WithResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, responseWriterKey, w)
}

// ResponseWriterFromContext retrieves the stashed response writer.
func ResponseWriterFromContext(ctx context.Context) (http.ResponseWriter, bool) {
	w, ok := ctx.Value(responseWriterKey).(http.ResponseWriter)
	return w, ok
}
