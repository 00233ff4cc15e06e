package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pkoopman/draughtsplay/internal/board"
	"github.com/pkoopman/draughtsplay/internal/engine"
)

// errTerminal reports a search request for a lost position.
var errTerminal = errors.New("no legal moves")

// Handlers holds the HTTP handlers. Each search request gets its own
// engine so concurrent analyses never share search state.
type Handlers struct {
	version string
	pool    *WorkerPool
}

// NewHandlers creates a Handlers instance without a worker pool.
func NewHandlers(version string) *Handlers {
	return &Handlers{version: version}
}

// NewHandlersWithPool creates a Handlers instance with a worker pool.
func NewHandlersWithPool(version string, pool *WorkerPool) *Handlers {
	return &Handlers{version: version, pool: pool}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Ready:   true,
	}

	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}

	writeJSON(w, http.StatusOK, resp)
}

// Evaluate handles POST /api/evaluate
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.AcquireEval(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseEval()
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "position is required", "MISSING_POSITION")
		return
	}

	resp, err := evaluatePosition(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_POSITION")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Move handles POST /api/move
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.AcquireSearch(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseSearch()
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "position is required", "MISSING_POSITION")
		return
	}

	resp, err := searchPosition(req)
	if err == errTerminal {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "NO_MOVES")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_POSITION")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// LegalMoves handles POST /api/moves
func (h *Handlers) LegalMoves(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.AcquireEval(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
			return
		}
		defer h.pool.ReleaseEval()
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "position is required", "MISSING_POSITION")
		return
	}

	resp, err := legalMoves(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_POSITION")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// evaluatePosition runs a static evaluation for a request.
func evaluatePosition(req EvaluateRequest) (EvaluateResponse, error) {
	pos, err := board.ParseFEN(req.Position)
	if err != nil {
		return EvaluateResponse{}, err
	}

	counts := pos.CountPieces()
	total := counts[board.WhiteMan] + counts[board.BlackMan] +
		counts[board.WhiteKing] + counts[board.BlackKing]

	eval := engine.NewEvaluator(engine.DefaultWeights)
	return EvaluateResponse{
		Score:    eval.Evaluate(pos),
		Phase:    engine.GamePhase(total),
		Position: pos.FEN(),
	}, nil
}

// searchPosition runs a best-move search for a request.
func searchPosition(req MoveRequest) (MoveResponse, error) {
	pos, err := board.ParseFEN(req.Position)
	if err != nil {
		return MoveResponse{}, err
	}
	if len(pos.LegalMoves()) == 0 {
		return MoveResponse{}, errTerminal
	}

	depth := req.Depth
	if depth <= 0 {
		depth = engine.DifficultySettings[engine.Medium].Depth
	}

	eng := engine.NewEngine(depth)
	if req.Seed != 0 {
		eng.SetSeed(req.Seed)
	}
	if req.MoveTimeMs > 0 {
		timer := time.AfterFunc(time.Duration(req.MoveTimeMs)*time.Millisecond, eng.Stop)
		defer timer.Stop()
	}

	move, info := eng.SelectMoveInfo(pos, depth)

	pv := make([]string, len(info.PV))
	for i, m := range info.PV {
		pv[i] = m.String()
	}
	return MoveResponse{
		Move:   move.String(),
		Score:  info.Score,
		Depth:  info.Depth,
		PV:     pv,
		TimeMs: info.Time.Milliseconds(),
	}, nil
}

// legalMoves lists the legal moves for a request.
func legalMoves(req EvaluateRequest) (LegalMovesResponse, error) {
	pos, err := board.ParseFEN(req.Position)
	if err != nil {
		return LegalMovesResponse{}, err
	}

	moves := pos.LegalMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return LegalMovesResponse{
		Moves:    out,
		Terminal: len(moves) == 0,
		Position: pos.FEN(),
	}, nil
}
