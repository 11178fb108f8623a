package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"sciparse/internal/airtable"
	"sciparse/internal/article"
	"sciparse/internal/frontmatter"
	"sciparse/internal/outline"
)

// ParseRequest is the body for POST /api/v1/parse.
type ParseRequest struct {
	HTML      string `json:"html"`
	SourceURL string `json:"source_url,omitempty"`
	RecordID  string `json:"record_id,omitempty"`
}

// ParseURLRequest is the body for POST /api/v1/parse-url.
type ParseURLRequest struct {
	URL      string `json:"url"`
	RecordID string `json:"record_id,omitempty"`
}

// ParseResponse is the result envelope for both parse endpoints.
type ParseResponse struct {
	ID               string             `json:"id"`
	Timestamp        time.Time          `json:"timestamp"`
	SourceURL        string             `json:"source_url,omitempty"`
	Status           string             `json:"status"`
	Markdown         string             `json:"markdown"`
	Metadata         article.Metadata   `json:"metadata"`
	Outline          []*outline.Section `json:"outline"`
	ProcessingTimeMS int64              `json:"processing_time_ms"`
	RecordID         string             `json:"record_id,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxContentBytes)

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		jsonError(w, "invalid request body: "+err.Error(), status)
		return
	}
	if req.HTML == "" {
		jsonError(w, "html is required", http.StatusBadRequest)
		return
	}

	s.respond(w, req.HTML, req.SourceURL, req.RecordID)
}

func (s *Server) handleParseURL(w http.ResponseWriter, r *http.Request) {
	var req ParseURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		jsonError(w, "url is required", http.StatusBadRequest)
		return
	}

	rawHTML, err := s.fetcher.Get(r.Context(), req.URL)
	if err != nil {
		jsonError(w, "failed to fetch url: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.respond(w, rawHTML, req.URL, req.RecordID)
}

func (s *Server) respond(w http.ResponseWriter, rawHTML, sourceURL, recordID string) {
	start := time.Now()

	md, meta, err := s.parser.Parse(rawHTML, sourceURL)
	if err != nil {
		jsonError(w, "failed to parse html: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := ParseResponse{
		ID:               uuid.NewString(),
		Timestamp:        time.Now().UTC(),
		SourceURL:        sourceURL,
		Status:           "success",
		Markdown:         md,
		Metadata:         meta,
		Outline:          outline.FromMarkdown(md),
		ProcessingTimeMS: time.Since(start).Milliseconds(),
		RecordID:         recordID,
	}

	// Delivery and sync run after the response; failures are logged, never
	// surfaced to the caller.
	if s.webhook.IsConfigured() {
		go s.deliverWebhook(resp)
	}
	if s.airtable.IsConfigured() {
		go s.syncAirtable(resp)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) deliverWebhook(resp ParseResponse) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Downstream workflow tools read the metadata from YAML front matter
	// on the markdown field.
	body, err := frontmatter.Compose(resp.Metadata, resp.Markdown)
	if err != nil {
		s.log.Error("compose front matter", "id", resp.ID, "error", err)
		return
	}
	resp.Markdown = body

	if err := s.webhook.Deliver(ctx, resp); err != nil {
		s.log.Error("webhook delivery failed", "id", resp.ID, "error", err)
	}
}

func (s *Server) syncAirtable(resp ParseResponse) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fields := airtable.Fields{
		Title:           resp.Metadata.Title,
		Authors:         strings.Join(resp.Metadata.Authors, ", "),
		PublicationDate: resp.Metadata.PublicationDate,
		Journal:         resp.Metadata.Journal,
		DOI:             resp.Metadata.DOI,
		Abstract:        resp.Metadata.Abstract,
		Markdown:        resp.Markdown,
		SourceURL:       resp.SourceURL,
		Status:          resp.Status,
	}
	recordID, err := s.airtable.SyncRecord(ctx, resp.RecordID, fields)
	if err != nil {
		s.log.Error("airtable sync failed", "id", resp.ID, "error", err)
		return
	}
	s.log.Info("airtable record synced", "id", resp.ID, "record_id", recordID)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
