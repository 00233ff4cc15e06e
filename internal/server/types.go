// Package server provides an HTTP/JSON analysis API for the draughts
// engine, plus a WebSocket endpoint for interactive clients.
package server

// EvaluateRequest is the request body for static position evaluation.
type EvaluateRequest struct {
	Position string `json:"position"` // FEN, e.g. "W:W31-50:B1-20"
}

// EvaluateResponse is the response for static position evaluation.
type EvaluateResponse struct {
	Score    int    `json:"score"`    // Positive favors white
	Phase    int    `json:"phase"`    // Game phase 0..3
	Position string `json:"position"` // Echo of the evaluated FEN
}

// MoveRequest is the request body for a best-move search.
type MoveRequest struct {
	Position   string `json:"position"`               // FEN
	Depth      int    `json:"depth,omitempty"`        // Search depth (default medium)
	MoveTimeMs int    `json:"move_time_ms,omitempty"` // Soft time limit
	Seed       int64  `json:"seed,omitempty"`         // Shuffle seed (0 = random)
}

// MoveResponse is the response for a best-move search.
type MoveResponse struct {
	Move   string   `json:"move"`  // Numeric notation, e.g. "32-28" or "28x19"
	Score  int      `json:"score"`
	Depth  int      `json:"depth"`
	PV     []string `json:"pv,omitempty"`
	TimeMs int64    `json:"time_ms"`
}

// LegalMovesResponse lists the legal moves in a position.
type LegalMovesResponse struct {
	Moves    []string `json:"moves"`
	Terminal bool     `json:"terminal"` // True when the side to move has lost
	Position string   `json:"position"`
}

// HealthResponse is the response for the health check.
type HealthResponse struct {
	Status  string     `json:"status"`
	Version string     `json:"version"`
	Ready   bool       `json:"ready"`
	Pool    *PoolStats `json:"pool,omitempty"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
