// Package api is the chi HTTP surface a WebGL host talks to: it stores
// and retrieves sessions, extracts render buffers from a session's
// layout for the host's current viewport, and answers hit-test and
// drag-select queries against the same layout. It holds no state of
// its own beyond a session.Store — every request is served fresh from
// whatever the store currently has for that session ID.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/biofabric/biofabric/pkg/hittest"
	"github.com/biofabric/biofabric/pkg/render"
	"github.com/biofabric/biofabric/pkg/session"
)

// errNoLayout is returned when a render/hit-test endpoint is called
// against a session that hasn't been laid out yet.
var errNoLayout = errors.New("session has no layout")

// Server serves the BioFabric HTTP API. Use NewServer to construct one
// with sane defaults, then Routes() to get a chi.Router to mount or
// serve directly.
type Server struct {
	Store   session.Store
	Logger  *log.Logger
	Palette render.ColorPalette
}

// NewServer builds a Server backed by store. A nil logger falls back
// to log.Default().
func NewServer(store session.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Store:   store,
		Logger:  logger,
		Palette: render.DefaultPalette(),
	}
}

// Routes builds the server's route tree.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Put("/", s.handlePutSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/render", s.handleRender)
			r.Get("/hit", s.handleHitTest)
			r.Post("/select-rect", s.handleSelectRect)
		})
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.loadSession(w, r, id)
	if err != nil {
		return
	}
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		if err := session.WriteJSON(w, sess); err != nil {
			s.Logger.Error("write session json", "id", id, "err", err)
		}
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	if err := session.WriteXML(w, sess); err != nil {
		s.Logger.Error("write session xml", "id", id, "err", err)
	}
}

func (s *Server) handlePutSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var sess *session.Session
	var err error
	if wantsJSON(r) {
		sess, err = session.ReadJSON(r.Body)
	} else {
		sess, err = session.ReadXML(r.Body)
	}
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	sess.ID = id

	if err := s.Store.Set(r.Context(), sess); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.Logger.Info("stored session", "id", id, "nodes", sess.Network.NodeCount())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRender extracts a RenderOutput for the session's current
// layout at the viewport described by query parameters, and writes it
// as a single binary message (see render.EncodeRenderOutput).
//
// Query parameters: x, y, width, height (viewport, grid units),
// ppgu (pixels per grid unit, default 1.0), canvas_width, canvas_height
// (pixels, default 1280x720), show_shadows (default: the session's
// DisplayOptions.ShowShadows).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.loadSession(w, r, id)
	if err != nil {
		return
	}
	if sess.Layout == nil {
		s.respondError(w, http.StatusConflict, errNoLayout)
		return
	}

	q := r.URL.Query()
	vp := render.Viewport{
		X:      queryFloat(q, "x", 0),
		Y:      queryFloat(q, "y", 0),
		Width:  queryFloat(q, "width", float64(sess.Layout.ColumnCount)+1),
		Height: queryFloat(q, "height", float64(sess.Layout.RowCount)+1),
	}
	ppgu := queryFloat(q, "ppgu", 1.0)
	canvasWidth := uint32(queryFloat(q, "canvas_width", 1280))
	canvasHeight := uint32(queryFloat(q, "canvas_height", 720))
	showShadows := sess.DisplayOptions.ShowShadows
	if v := q.Get("show_shadows"); v != "" {
		showShadows, _ = strconv.ParseBool(v)
	}

	params := render.NewRenderParams(vp, ppgu, canvasWidth, canvasHeight, showShadows)
	out := render.Extract(sess.Layout, params, s.Palette)

	w.Header().Set("Content-Type", "application/octet-stream")
	if err := render.EncodeRenderOutput(w, out); err != nil {
		s.Logger.Error("encode render output", "id", id, "err", err)
	}
}

// handleHitTest answers a point hit-test: query parameters x, y, and
// tolerance (grid units, default 0.5).
func (s *Server) handleHitTest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.loadSession(w, r, id)
	if err != nil {
		return
	}
	if sess.Layout == nil {
		s.respondError(w, http.StatusConflict, errNoLayout)
		return
	}

	q := r.URL.Query()
	x := queryFloat(q, "x", 0)
	y := queryFloat(q, "y", 0)
	tolerance := queryFloat(q, "tolerance", 0.5)

	idx := hittest.Build(sess.Layout, sess.DisplayOptions.ShowShadows)
	s.respondJSON(w, http.StatusOK, idx.HitTest(x, y, tolerance))
}

// handleSelectRect answers a drag-select query: query parameters x, y,
// width, height describe the selection rectangle in grid units.
func (s *Server) handleSelectRect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.loadSession(w, r, id)
	if err != nil {
		return
	}
	if sess.Layout == nil {
		s.respondError(w, http.StatusConflict, errNoLayout)
		return
	}

	q := r.URL.Query()
	rect := hittest.NewRect(
		queryFloat(q, "x", 0),
		queryFloat(q, "y", 0),
		queryFloat(q, "width", 0),
		queryFloat(q, "height", 0),
	)

	idx := hittest.Build(sess.Layout, sess.DisplayOptions.ShowShadows)
	s.respondJSON(w, http.StatusOK, idx.SelectRect(rect))
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, id string) (*session.Session, error) {
	sess, err := s.Store.Get(r.Context(), id)
	if err == session.ErrNotFound {
		s.respondError(w, http.StatusNotFound, err)
		return nil, err
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return nil, err
	}
	return sess, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("write json response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return r.Header.Get("Content-Type") == "application/json" || r.Header.Get("Accept") == "application/json"
}

func queryFloat(q url.Values, key string, fallback float64) float64 {
	v := q.Get(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
