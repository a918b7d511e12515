package model

// SearchRequest is the request body for POST /api/search. Query is a pointer
// so a missing key can be told apart from an explicit empty string; only the
// missing key is rejected.
type SearchRequest struct {
	Query *string `json:"query"`
}

// SearchResponse is the response for POST /api/search. UserQuery echoes the
// input verbatim; GeminiSummary is the text returned by the completion model.
type SearchResponse struct {
	UserQuery     string `json:"user_query"`
	GeminiSummary string `json:"gemini_summary"`
}

// ErrorResponse is the shape of every error payload the API emits.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the response for GET /.
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Postgres string `json:"postgres"`
	Uptime   int64  `json:"uptime_seconds"`
}

// Client-visible error messages. Raw driver or upstream error text is never
// echoed to clients; details go to the server log instead.
const (
	MsgArticleNotFound    = "Article not found"
	MsgInvalidField       = "invalid field"
	MsgInvalidArticleID   = "invalid article id"
	MsgQueryRequired      = "'query' is required"
	MsgDatastoreDown      = "could not connect to datastore"
	MsgInternalError      = "internal server error"
	MsgSummaryUnavailable = "failed to reach summary model"
	MsgSummaryUnset       = "summary model is not configured"
)
