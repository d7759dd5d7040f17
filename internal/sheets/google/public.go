package google

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ports "adsboard/internal/sheets"
)

// PublicClient reads link-shared spreadsheets through the CSV export
// endpoint. It needs no credentials, which keeps the agent-owned sheets out
// of the service account's sharing list.
type PublicClient struct {
	httpClient *http.Client
	baseURL    string
}

var _ ports.GridSource = (*PublicClient)(nil)

// NewPublic creates a CSV export client with a bounded request timeout.
func NewPublic() *PublicClient {
	return &PublicClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://docs.google.com",
	}
}

// ExportURL builds the gviz CSV export URL for one worksheet.
func (c *PublicClient) ExportURL(spreadsheetID, worksheet string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		c.baseURL, spreadsheetID, url.QueryEscape(worksheet))
}

// Fetch downloads the worksheet as CSV and returns it as a grid. The export
// endpoint quotes every cell, so ragged rows come back already padded; the
// parser is still configured to tolerate varying row widths.
func (c *PublicClient) Fetch(ctx context.Context, spreadsheetID, worksheet string) (ports.Grid, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(spreadsheetID, worksheet), nil)
	if err != nil {
		return nil, fmt.Errorf("build export request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s!%s: %w", spreadsheetID, worksheet, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s!%s: unexpected status %d", spreadsheetID, worksheet, resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv for %s!%s: %w", spreadsheetID, worksheet, err)
	}
	return ports.Grid(rows), nil
}
