// Package airtable syncs parse results into an Airtable table.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with the Airtable records API for one base/table.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// APIURL builds the records endpoint for a base and table.
func APIURL(baseID, tableName string) string {
	return fmt.Sprintf("https://api.airtable.com/v0/%s/%s", baseID, tableName)
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsConfigured reports whether the client has both an endpoint and a token.
func (c *Client) IsConfigured() bool {
	return c.baseURL != "" && c.token != ""
}

// Fields maps parse output onto the table's columns.
type Fields struct {
	Title           string `json:"Title,omitempty"`
	Authors         string `json:"Authors,omitempty"`
	PublicationDate string `json:"Publication Date,omitempty"`
	Journal         string `json:"Journal,omitempty"`
	DOI             string `json:"DOI,omitempty"`
	Abstract        string `json:"Abstract,omitempty"`
	Markdown        string `json:"Markdown,omitempty"`
	SourceURL       string `json:"Source URL,omitempty"`
	Status          string `json:"Status,omitempty"`
}

type recordBody struct {
	Fields   Fields `json:"fields"`
	Typecast bool   `json:"typecast"`
}

type recordResponse struct {
	ID string `json:"id"`
}

// SyncRecord updates the record when recordID is set, otherwise creates a
// new one. It returns the ID of the affected record.
func (c *Client) SyncRecord(ctx context.Context, recordID string, fields Fields) (string, error) {
	if recordID != "" {
		return recordID, c.UpdateRecord(ctx, recordID, fields)
	}
	return c.CreateRecord(ctx, fields)
}

// CreateRecord creates a new record and returns its ID.
func (c *Client) CreateRecord(ctx context.Context, fields Fields) (string, error) {
	var rec recordResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL, fields, &rec); err != nil {
		return "", fmt.Errorf("create record: %w", err)
	}
	return rec.ID, nil
}

// UpdateRecord patches an existing record.
func (c *Client) UpdateRecord(ctx context.Context, recordID string, fields Fields) error {
	if err := c.do(ctx, http.MethodPatch, c.baseURL+"/"+recordID, fields, nil); err != nil {
		return fmt.Errorf("update record %s: %w", recordID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, fields Fields, out *recordResponse) error {
	body, err := json.Marshal(recordBody{Fields: fields, Typecast: true})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
