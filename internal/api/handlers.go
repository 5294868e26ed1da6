package api

import (
	"errors"
	"net/http"

	"github.com/f3rmion/battlestats/internal/stats"
)

type parseResponse struct {
	Columns []string       `json:"columns"`
	Rows    [][]string     `json:"rows"`
	Links   []string       `json:"links"`
	Records []stats.Record `json:"records"`
	Skipped int            `json:"skipped"`
}

type apiKeyBody struct {
	APIKey string `json:"apikey"`
}

// handleParse parses the pasted text in the body and returns the sorted table
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, err := readText(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	table, parseErr := s.session.Parse(text)

	resp := parseResponse{
		Columns: stats.Columns,
		Rows:    [][]string{},
		Links:   []string{},
		Records: table.Records(),
		Skipped: countSkipped(parseErr),
	}
	for _, row := range table.Rows() {
		resp.Rows = append(resp.Rows, row.Cells)
		resp.Links = append(resp.Links, stats.ProfileLink(s.session.Config.API.ProfileURL, row.ID))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleExportCSV returns the generic CSV export of the pasted text
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	text, err := readText(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	table, _ := s.session.Parse(text)
	name, data := s.session.CSV(table)
	respondFile(w, name, data)
}

// handleExportYATA enriches the pasted text's rows and returns the YATA CSV
func (s *Server) handleExportYATA(w http.ResponseWriter, r *http.Request) {
	text, err := readText(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	key := r.Header.Get("X-Api-Key")
	if key == "" {
		key, err = s.session.APIKey()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to read API key")
			return
		}
	}
	if key == "" {
		respondError(w, http.StatusBadRequest, "API key required")
		return
	}

	table, _ := s.session.Parse(text)
	res := s.session.YATA(r.Context(), table, key, nil)
	respondFile(w, s.session.FileName(), res.CSV)
}

// handleGetAPIKey returns the stored API key
func (s *Server) handleGetAPIKey(w http.ResponseWriter, r *http.Request) {
	key, err := s.session.APIKey()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read API key")
		return
	}
	respondJSON(w, http.StatusOK, apiKeyBody{APIKey: key})
}

// handlePutAPIKey stores a new API key
func (s *Server) handlePutAPIKey(w http.ResponseWriter, r *http.Request) {
	var body apiKeyBody
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.session.SetAPIKey(body.APIKey); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save API key")
		return
	}
	respondJSON(w, http.StatusOK, body)
}

func countSkipped(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	var entryErr *stats.EntryError
	if errors.As(err, &entryErr) {
		return 1
	}
	return 0
}
