package graphql

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/httputil"
)

// Request is the JSON body of a GraphQL POST request.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves GraphQL requests over POST /graphql.
type Handler struct {
	schema graphql.Schema
	logger *slog.Logger
}

// NewHandler creates a GraphQL HTTP handler for the given schema.
func NewHandler(schema graphql.Schema, logger *slog.Logger) *Handler {
	return &Handler{
		schema: schema,
		logger: logger,
	}
}

// ServeHTTP executes one GraphQL request. Resolver failures travel in the
// response's errors list; HTTP status stays 200 per GraphQL convention, with
// 400 reserved for unreadable requests.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if req.Query == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "query is required"},
		})
		return
	}

	ctx := WithResponseWriter(r.Context(), w)

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	if len(result.Errors) > 0 {
		h.logger.DebugContext(r.Context(), "graphql request completed with errors",
			slog.String("operation", req.OperationName),
			slog.Int("error_count", len(result.Errors)),
		)
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
