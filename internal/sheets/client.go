package sheets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"
	defaultTimeout = 10 * time.Second
)

// HTTPClient talks to the Google Sheets values API. Only the small subset of
// operations the store needs is implemented.
type HTTPClient struct {
	baseURL       string
	spreadsheetID string
	apiKey        string
	client        *http.Client
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *HTTPClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.client = hc }
}

// NewHTTPClient creates a client for one spreadsheet.
func NewHTTPClient(spreadsheetID, apiKey string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
		apiKey:        apiKey,
		client:        &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Worksheet returns an accessor for the named tab. No round trip happens
// until the first operation.
func (c *HTTPClient) Worksheet(name string) (Worksheet, error) {
	if name == "" {
		return nil, fmt.Errorf("worksheet name must not be empty")
	}
	return &httpWorksheet{client: c, name: name}, nil
}

type httpWorksheet struct {
	client *HTTPClient
	name   string

	// gridID caches the numeric sheet id resolved for this tab. Row
	// deletion addresses tabs by grid id, not by name.
	gridID *int
}

// valueRange mirrors the values API payload.
type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

func (w *httpWorksheet) Rows() ([][]string, error) {
	var vr valueRange
	path := fmt.Sprintf("/%s/values/%s", w.client.spreadsheetID, url.PathEscape(w.name))
	if err := w.client.do(http.MethodGet, path, "", nil, &vr); err != nil {
		return nil, fmt.Errorf("fetch rows of %s: %w", w.name, err)
	}
	return vr.Values, nil
}

func (w *httpWorksheet) AppendRow(values []string) error {
	path := fmt.Sprintf("/%s/values/%s:append", w.client.spreadsheetID, url.PathEscape(w.name))
	body := valueRange{Values: [][]string{values}}
	if err := w.client.do(http.MethodPost, path, "valueInputOption=RAW", body, nil); err != nil {
		return fmt.Errorf("append row to %s: %w", w.name, err)
	}
	return nil
}

func (w *httpWorksheet) UpdateCell(row, col int, value string) error {
	cell := fmt.Sprintf("%s!%s%d", w.name, columnLetter(col), row)
	path := fmt.Sprintf("/%s/values/%s", w.client.spreadsheetID, url.PathEscape(cell))
	body := valueRange{Values: [][]string{{value}}}
	if err := w.client.do(http.MethodPut, path, "valueInputOption=RAW", body, nil); err != nil {
		return fmt.Errorf("update cell %s: %w", cell, err)
	}
	return nil
}

// resolveGridID looks up the numeric sheet id for this tab via one metadata
// round trip and caches it.
func (w *httpWorksheet) resolveGridID() (int, error) {
	if w.gridID != nil {
		return *w.gridID, nil
	}
	var meta struct {
		Sheets []struct {
			Properties struct {
				SheetID int    `json:"sheetId"`
				Title   string `json:"title"`
			} `json:"properties"`
		} `json:"sheets"`
	}
	path := "/" + w.client.spreadsheetID
	if err := w.client.do(http.MethodGet, path, "fields=sheets.properties", nil, &meta); err != nil {
		return 0, fmt.Errorf("fetch spreadsheet metadata: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties.Title == w.name {
			id := s.Properties.SheetID
			w.gridID = &id
			return id, nil
		}
	}
	return 0, fmt.Errorf("worksheet %s not found in spreadsheet", w.name)
}

func (w *httpWorksheet) DeleteRow(row int) error {
	gridID, err := w.resolveGridID()
	if err != nil {
		return fmt.Errorf("delete row %d of %s: %w", row, w.name, err)
	}
	// Row deletion goes through batchUpdate with a half-open 0-based range.
	type dimensionRange struct {
		SheetID    int    `json:"sheetId"`
		Dimension  string `json:"dimension"`
		StartIndex int    `json:"startIndex"`
		EndIndex   int    `json:"endIndex"`
	}
	type request struct {
		DeleteDimension struct {
			Range dimensionRange `json:"range"`
		} `json:"deleteDimension"`
	}
	var req request
	req.DeleteDimension.Range = dimensionRange{
		SheetID:    gridID,
		Dimension:  "ROWS",
		StartIndex: row - 1,
		EndIndex:   row,
	}
	body := map[string]any{"requests": []request{req}}
	path := fmt.Sprintf("/%s:batchUpdate", w.client.spreadsheetID)
	if err := w.client.do(http.MethodPost, path, "", body, nil); err != nil {
		return fmt.Errorf("delete row %d of %s: %w", row, w.name, err)
	}
	return nil
}

// do performs one API round trip, decoding the JSON response into out when
// out is non-nil.
func (c *HTTPClient) do(method, path, query string, body, out any) error {
	u := c.baseURL + path
	sep := "?"
	if query != "" {
		u += sep + query
		sep = "&"
	}
	if c.apiKey != "" {
		u += sep + "key=" + url.QueryEscape(c.apiKey)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// columnLetter converts a 1-based column number to A1 notation.
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}
