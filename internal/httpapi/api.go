// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package httpapi is a read-only REST debug surface over a Distributor's
// tree: a handful of mux.HandleFunc routes, an ErrorResponse JSON
// envelope on failure, and a query-selector style lookup rather than a
// generic CRUD API. It never mutates the tree over the network except
// through the single, explicit /publish/{path} route, which exists for
// demos and debugging, not production ingest.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	vsdcore "github.com/signaltree/vsd-core"
	"github.com/signaltree/vsd-core/internal/metrics"
)

func parseID(raw string) (uint32, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// ErrorResponse is the JSON envelope every failing handler writes.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func handleError(rw http.ResponseWriter, statusCode int, err error) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(ErrorResponse{
		Status: http.StatusText(statusCode),
		Error:  err.Error(),
	})
}

// SignalView is the JSON projection of one tree.Signal.
type SignalView struct {
	Path          string   `json:"path"`
	ID            uint32   `json:"id"`
	ElementKind   string   `json:"elementKind"`
	DataKind      string   `json:"dataKind,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	Description   string   `json:"description,omitempty"`
	AllowedValues []string `json:"allowedValues,omitempty"`
	Children      []string `json:"children,omitempty"`
	Value         any      `json:"value,omitempty"`
}

func viewOf(sig vsdcore.Signal) SignalView {
	v := SignalView{
		Path:          sig.Context().PathOf(sig),
		ID:            sig.NumericID(),
		ElementKind:   sig.ElementKind().String(),
		Unit:          sig.Unit(),
		Description:   sig.Description(),
		AllowedValues: sig.AllowedValues(),
	}
	if sig.IsBranch() {
		for _, c := range sig.Children() {
			v.Children = append(v.Children, c.Name())
		}
		return v
	}

	v.DataKind = sig.DataKind().String()
	if val, err := sig.Value(); err == nil {
		v.Value = literalOf(val)
	}
	return v
}

func literalOf(v vsdcore.Scalar) any {
	switch v.Kind {
	case vsdcore.KindFloat32:
		return v.F32
	case vsdcore.KindFloat64:
		return v.F64
	case vsdcore.KindString:
		return v.Str
	case vsdcore.KindBool:
		return v.Bool()
	default:
		return v.I64
	}
}

// Server mounts the debug routes onto a *mux.Router. It never mutates
// the tree outside handlePublish, and holds no lock of its own: the
// tree's own concurrency story (see internal/tree) governs what's safe.
type Server struct {
	dist    *vsdcore.Distributor
	metrics *metrics.Registry
}

// New builds a Server over dist. metrics may be nil, in which case
// GET /metrics answers 404.
func New(dist *vsdcore.Distributor, reg *metrics.Registry) *Server {
	return &Server{dist: dist, metrics: reg}
}

// Register wires every route onto router.
func (s *Server) Register(router *mux.Router) {
	router.HandleFunc("/signal/path/{path:.*}", s.handleByPath).Methods(http.MethodGet)
	router.HandleFunc("/signal/id/{id:[0-9]+}", s.handleByID).Methods(http.MethodGet)
	router.HandleFunc("/publish/{path:.*}", s.handlePublish).Methods(http.MethodPost)
	if s.metrics != nil {
		router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
}

// handleByPath godoc
// @summary     Look up a signal by its dotted path
// @tags        debug
// @produce     json
// @param       path path string true "dotted signal path, e.g. Vehicle.Speed"
// @success     200  {object} SignalView
// @failure     404  {object} ErrorResponse
// @router      /signal/path/{path} [get]
func (s *Server) handleByPath(rw http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]
	sig, err := s.dist.Context().LookupByPath(path)
	if err != nil {
		handleError(rw, http.StatusNotFound, err)
		return
	}
	writeJSON(rw, viewOf(sig))
}

// handleByID godoc
// @summary     Look up a signal by its numeric id
// @tags        debug
// @produce     json
// @param       id   path int true "numeric signal id"
// @success     200  {object} SignalView
// @failure     404  {object} ErrorResponse
// @router      /signal/id/{id} [get]
func (s *Server) handleByID(rw http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		handleError(rw, http.StatusBadRequest, err)
		return
	}
	sig, err := s.dist.Context().LookupByID(id)
	if err != nil {
		handleError(rw, http.StatusNotFound, err)
		return
	}
	writeJSON(rw, viewOf(sig))
}

// handlePublish godoc
// @summary     Publish the subtree rooted at path, as-is
// @tags        debug
// @produce     json
// @param       path path string true "dotted signal path naming the publish root"
// @success     200  {string} string "ok"
// @failure     404  {object} ErrorResponse
// @failure     500  {object} ErrorResponse
// @router      /publish/{path} [post]
func (s *Server) handlePublish(rw http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]
	sig, err := s.dist.Context().LookupByPath(path)
	if err != nil {
		handleError(rw, http.StatusNotFound, err)
		return
	}
	if err := s.dist.Publish(sig); err != nil {
		handleError(rw, http.StatusInternalServerError, err)
		return
	}
	rw.WriteHeader(http.StatusOK)
}

func writeJSON(rw http.ResponseWriter, v any) {
	rw.Header().Set("Content-Type", "application/json")
	json.NewEncoder(rw).Encode(v)
}
