package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paperlens/paperlens/internal/export"
	"github.com/paperlens/paperlens/internal/store"
)

// handleListDocuments lists stored documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	recs, err := s.orchestrator.Store().List(200)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": recs})
}

// handleGetDocument returns one stored analysis, full structure included.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	rec, err := s.orchestrator.Store().Get(docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// handleExportDocument renders a stored analysis in the requested format.
func (s *Server) handleExportDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	formatName := r.URL.Query().Get("format")
	if formatName == "" {
		formatName = "md"
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := s.orchestrator.Store().Get(docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := export.Render(format, rec.Document, rec.Summaries)
	if err != nil {
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.Write([]byte(out))
}

// handleDeleteDocument removes a stored analysis.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.orchestrator.Store().Delete(docID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"deleted": docID})
}

func contentTypeFor(format export.Format) string {
	switch format {
	case export.FormatHTML:
		return "text/html; charset=utf-8"
	case export.FormatJSON:
		return "application/json"
	case export.FormatBibTeX:
		return "application/x-bibtex"
	default:
		return "text/markdown; charset=utf-8"
	}
}
