package argilla

import (
	"context"
	"fmt"
	"net/http"
)

// Records retrieves one page of a dataset's records, ordered by insertion.
// The response includes the dataset's total record count.
func (c *Client) Records(ctx context.Context, datasetID string, offset, limit int) (*RecordPage, error) {
	if limit <= 0 {
		limit = 100
	}

	var page RecordPage
	path := fmt.Sprintf("/api/v1/datasets/%s/records?offset=%d&limit=%d", datasetID, offset, limit)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddRecords appends a batch of records to a dataset.
func (c *Client) AddRecords(ctx context.Context, datasetID string, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	// Server-assigned ids from the source dataset must not be replayed.
	items := make([]Record, len(records))
	for i, rec := range records {
		rec.ID = ""
		items[i] = rec
	}

	body := map[string]any{"items": items}
	path := fmt.Sprintf("/api/v1/datasets/%s/records", datasetID)
	return c.doRequest(ctx, http.MethodPost, path, body, nil)
}
