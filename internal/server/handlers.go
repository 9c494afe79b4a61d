package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/loomstack-labs/specloom/internal/state"
	"github.com/loomstack-labs/specloom/pkg/specio"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps store errors to HTTP status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, state.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	s.logger.Error("store operation failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if projects == nil {
		projects = []*state.Project{}
	}
	s.writeJSON(w, http.StatusOK, projects)
}

type createProjectRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "project name is required")
		return
	}
	p, err := s.store.CreateProject(r.Context(), req.Name)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("project created", "id", p.ID, "name", p.Name)
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetProject(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "projectID")
	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("project deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.GetGraph(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	var g state.Graph
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid graph payload")
		return
	}
	projectID := chi.URLParam(r, "projectID")
	if err := s.store.ReplaceGraph(r.Context(), projectID, &g); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("graph replaced", "project", projectID,
		"nodes", len(g.Nodes), "edges", len(g.Edges))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	g, err := s.store.GetGraph(r.Context(), projectID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	report := s.analyzer.Validate(g.Nodes, g.Edges, g.Screens)
	s.logger.Info("project validated", "project", projectID,
		"issues", report.Counts.Total, "errors", report.Counts.Error)
	s.writeJSON(w, http.StatusOK, report)
}

// handleImport replaces the project graph from a YAML or JSON document.
// The Content-Type header selects the decoder; YAML is the default.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var doc *specio.Document
	if isJSONContentType(r.Header.Get("Content-Type")) {
		doc, err = specio.ParseJSON(body)
	} else {
		doc, err = specio.ParseYAML(body)
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nodes, edges, screens, err := doc.Decode()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	projectID := chi.URLParam(r, "projectID")
	g := &state.Graph{Nodes: nodes, Edges: edges, Screens: screens}
	if err := s.store.ReplaceGraph(r.Context(), projectID, g); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.logger.Info("graph imported", "project", projectID,
		"nodes", len(nodes), "edges", len(edges))
	w.WriteHeader(http.StatusNoContent)
}

// handleExport serializes the project graph as a document. The format
// query parameter selects yaml (default) or json.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	p, err := s.store.GetProject(r.Context(), projectID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	g, err := s.store.GetGraph(r.Context(), projectID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	doc, err := specio.Encode(p.Name, g.Nodes, g.Edges, g.Screens)
	if err != nil {
		s.logger.Error("export failed", "project", projectID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to encode document")
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "json":
		out, err := doc.EncodeJSON()
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "failed to encode document")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(out)
	case "", "yaml":
		out, err := doc.EncodeYAML()
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "failed to encode document")
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(out)
	default:
		s.writeError(w, http.StatusBadRequest, "unsupported format: "+format)
	}
}

func isJSONContentType(ct string) bool {
	ct, _, _ = strings.Cut(ct, ";")
	return strings.TrimSpace(ct) == "application/json"
}
