package rpc

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hcgov/hcengine"
)

const maxRequestBytes = 1 << 20 // 1 MiB, mirrors the teacher's RPC body cap

// Server wires the governance engine onto an HTTP mux. Methods are dispatched
// by name out of a fixed table built once at construction, the same shape as
// the teacher's module-prefixed RPC handler registries.
type Server struct {
	engine  *hcengine.Engine
	logger  *slog.Logger
	methods map[string]func(json.RawMessage) (interface{}, error)
}

// NewServer constructs a Server bound to engine.
func NewServer(engine *hcengine.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: engine, logger: logger}
	s.methods = map[string]func(json.RawMessage) (interface{}, error){
		"gov.createProposal":   s.handleCreateProposal,
		"gov.vote":             s.handleVote,
		"gov.stake":            s.handleStake,
		"gov.unstake":          s.handleUnstake,
		"gov.boostProposal":    s.handleBoostProposal,
		"gov.expireNonBoosted": s.handleExpireNonBoosted,
		"gov.resolveBoosted":   s.handleResolveBoosted,
		"gov.getProposal":      s.handleGetProposal,
		"gov.getVote":          s.handleGetVote,
		"gov.getUpstake":       s.handleGetUpstake,
		"gov.getDownstake":     s.handleGetDownstake,
		"gov.getConfidence":    s.handleGetConfidence,
		"gov.numProposals":     s.handleNumProposals,
	}
	return s
}

// Router builds the chi.Router exposing /rpc, /healthz, and /metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/rpc", s.handleRPC)
	return r
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-Id", requestID)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		writeResponse(w, newError(nil, codeParseError, "failed to read request body"))
		return
	}
	if len(body) > maxRequestBytes {
		writeResponse(w, newError(nil, codeInvalidRequest, "request body too large"))
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeResponse(w, newError(nil, codeParseError, "malformed json"))
		return
	}
	if req.Method == "" {
		writeResponse(w, newError(req.ID, codeInvalidRequest, "method is required"))
		return
	}

	handler, ok := s.methods[req.Method]
	if !ok {
		writeResponse(w, newError(req.ID, codeMethodNotFound, "unknown method: "+req.Method))
		return
	}

	result, err := handler(req.Params)
	if err != nil {
		if invalid, ok := err.(*invalidParamsError); ok {
			writeResponse(w, newError(req.ID, codeInvalidParams, invalid.Error()))
			return
		}
		s.logger.Warn("rpc method failed", "request_id", requestID, "method", req.Method, "error", err)
		writeResponse(w, newError(req.ID, codeFor(err), err.Error()))
		return
	}
	writeResponse(w, newResult(req.ID, result))
}

func writeResponse(w http.ResponseWriter, resp Response) {
	_ = json.NewEncoder(w).Encode(resp)
}

// invalidParamsError marks a params-decoding failure distinct from a
// domain-level engine error, so the dispatcher can always report
// codeInvalidParams for it regardless of what codeFor would otherwise guess.
type invalidParamsError struct{ msg string }

func (e *invalidParamsError) Error() string { return e.msg }

func invalidParams(msg string) error { return &invalidParamsError{msg: msg} }
