package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	cberrors "github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/output"
)

type moveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

type resetRequest struct {
	FEN string `json:"fen"`
}

type moveView struct {
	From string `json:"from"`
	To   string `json:"to"`
	UCI  string `json:"uci"`
}

type squareMovesResponse struct {
	Square string   `json:"square"`
	Piece  string   `json:"piece,omitempty"`
	Moves  []string `json:"moves"`
}

type allMovesResponse struct {
	ToMove string     `json:"toMove"`
	Count  int        `json:"count"`
	Moves  []moveView `json:"moves"`
}

type perftResponse struct {
	Depth     int             `json:"depth"`
	Nodes     uint64          `json:"nodes"`
	Workers   int             `json:"workers"`
	ElapsedMs int64           `json:"elapsedMs"`
	Cache     perftCacheView  `json:"cache"`
	Divide    []perftMoveView `json:"divide"`
}

type perftCacheView struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

type perftMoveView struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSquareMoves(w http.ResponseWriter, r *http.Request) {
	origin, err := chess.ParseField(mux.Vars(r)["square"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := squareMovesResponse{Square: origin.String(), Moves: []string{}}
	piece, moves, ok := s.session.PossibleMoves(origin)
	if ok {
		resp.Piece = string(piece.Code())
		for _, f := range moves {
			resp.Moves = append(resp.Moves, f.String())
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAllMoves(w http.ResponseWriter, r *http.Request) {
	colour, moves := s.session.Moves()
	resp := allMovesResponse{
		ToMove: strings.ToLower(colour.String()),
		Count:  len(moves),
		Moves:  make([]moveView, 0, len(moves)),
	}
	for _, m := range moves {
		j := output.MoveToJSON(0, m)
		resp.Moves = append(resp.Moves, moveView{From: j.From, To: j.To, UCI: j.UCI})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !s.decodeBody(w, r, &req, false) {
		return
	}

	from, err := chess.ParseField(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := chess.ParseField(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "to: "+err.Error())
		return
	}
	promotion, err := engine.ParsePromotion(req.Promotion)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.session.Play(from, to, promotion)
	if err != nil {
		s.logger.Warn("move rejected", "from", from.String(), "to", to.String(), "err", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.logger.Info("move played", "from", from.String(), "to", to.String(), "fen", snap.FEN)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !s.decodeBody(w, r, &req, true) {
		return
	}

	snap, err := s.session.Reset(req.FEN)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.logger.Info("game reset", "fen", snap.FEN)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePerft(w http.ResponseWriter, r *http.Request) {
	depth, err := strconv.Atoi(mux.Vars(r)["depth"])
	if err != nil || depth < 1 || depth > s.cfg.PerftMaxDepth {
		writeError(w, http.StatusBadRequest, "depth must be between 1 and "+strconv.Itoa(s.cfg.PerftMaxDepth))
		return
	}

	start := time.Now()
	res, err := s.session.Perft(r.Context(), depth, s.cfg.PerftWorkers)
	if err != nil {
		// The client went away or the server is shutting down.
		s.logger.Warn("perft cancelled", "depth", depth, "err", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	elapsed := time.Since(start)
	s.logger.Info("perft", "depth", depth, "nodes", res.Nodes, "workers", res.Workers,
		"cache_hits", res.CacheHits, "cache_misses", res.CacheMisses, "elapsed", elapsed)

	resp := perftResponse{
		Depth:     res.Depth,
		Nodes:     res.Nodes,
		Workers:   res.Workers,
		ElapsedMs: elapsed.Milliseconds(),
		Cache: perftCacheView{
			Hits:    res.CacheHits,
			Misses:  res.CacheMisses,
			Entries: res.CacheEntries,
		},
		Divide:    make([]perftMoveView, 0, len(res.Divide)),
	}
	for _, d := range res.SortDivide() {
		resp.Divide = append(resp.Divide, perftMoveView{Move: output.MoveToJSON(0, d.Move).UCI, Nodes: d.Nodes})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, ok := s.hub.upgrade(w, r)
	if !ok {
		return
	}
	// Registering under the session read lock keeps moves from slipping
	// between the initial snapshot and the first broadcast.
	s.session.View(func(snap *output.Snapshot) {
		msg, err := json.Marshal(snap)
		if err != nil {
			s.logger.Error("encode snapshot", "err", err)
			_ = c.conn.Close()
			return
		}
		s.hub.register(c, msg)
	})
}

// broadcast is the session change hook.
func (s *Server) broadcast(snap *output.Snapshot) {
	msg, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("encode snapshot", "err", err)
		return
	}
	s.hub.Broadcast(msg)
}

// decodeBody decodes a JSON request body into v. An empty body is accepted
// only when optional is set. It writes the error response and returns
// false on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if optional {
			return true
		}
		writeError(w, http.StatusBadRequest, "request body is empty")
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case cberrors.Is(err, cberrors.ErrEmptyOrigin),
		cberrors.Is(err, cberrors.ErrWrongTurn),
		cberrors.Is(err, cberrors.ErrIllegalMove):
		return http.StatusConflict
	case cberrors.Is(err, cberrors.ErrInvalidField),
		cberrors.Is(err, cberrors.ErrInvalidPromotion),
		cberrors.Is(err, cberrors.ErrInvalidFEN),
		cberrors.Is(err, cberrors.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = output.WriteJSON(w, v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
