package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/koustreak/duckwire/internal/dialect"
	"github.com/koustreak/duckwire/internal/errs"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type namesResponse struct {
	Schema string   `json:"schema,omitempty"`
	Names  []string `json:"names"`
}

func (s *Server) schema(r *http.Request) string {
	if q := r.URL.Query().Get("schema"); q != "" {
		return dialect.NormalizeSchema(q)
	}
	return dialect.NormalizeSchema(s.cfg.DefaultSchema)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"dialect":      dialect.Name,
		"driver":       dialect.Driver,
		"capabilities": s.dialect.Capabilities(),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := s.dialect.InspectCatalog(r.Context(), s.conn, s.schema(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	schema := s.schema(r)
	names, err := s.dialect.GetTableNames(r.Context(), s.conn, schema)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, namesResponse{Schema: schema, Names: names})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	schema, table := s.schema(r), chi.URLParam(r, "table")

	ok, err := s.dialect.HasTable(ctx, s.conn, schema, table)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, errs.New(errs.ErrKindNotFound, "table "+schema+"."+table+" not found"))
		return
	}

	info, err := s.dialect.InspectTable(ctx, s.conn, schema, table)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	schema := s.schema(r)
	names, err := s.dialect.GetViewNames(r.Context(), s.conn, schema)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, namesResponse{Schema: schema, Names: names})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	schema, view := s.schema(r), chi.URLParam(r, "view")

	def, err := s.dialect.GetViewDefinition(r.Context(), s.conn, schema, view)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if def == "" {
		s.writeError(w, r, errs.New(errs.ErrKindNotFound, "view "+schema+"."+view+" not found"))
		return
	}
	writeJSON(w, http.StatusOK, dialect.ViewInfo{Name: view, Definition: def})
}

func (s *Server) handleSequences(w http.ResponseWriter, r *http.Request) {
	schema := s.schema(r)
	names, err := s.dialect.GetSequenceNames(r.Context(), s.conn, schema)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, namesResponse{Schema: schema, Names: names})
}

func (s *Server) handleTempTables(w http.ResponseWriter, r *http.Request) {
	names, err := s.dialect.GetTempTableNames(r.Context(), s.conn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, namesResponse{Names: names})
}

func (s *Server) handleTempViews(w http.ResponseWriter, r *http.Request) {
	names, err := s.dialect.GetTempViewNames(r.Context(), s.conn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, namesResponse{Names: names})
}

// statusFor maps an error kind onto an HTTP status.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.ErrKindNotFound:
		return http.StatusNotFound
	case errs.ErrKindInvalidInput:
		return http.StatusBadRequest
	case errs.ErrKindPermissionDenied:
		return http.StatusForbidden
	case errs.ErrKindNotImplemented:
		return http.StatusNotImplemented
	case errs.ErrKindNotSupported:
		return http.StatusMethodNotAllowed
	case errs.ErrKindConnectionFailed:
		return http.StatusServiceUnavailable
	case errs.ErrKindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorWith("catalog request failed", err, map[string]any{"path": r.URL.Path})
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: errs.KindOf(err).String()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
