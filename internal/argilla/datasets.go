package argilla

import (
	"context"
	"fmt"
	"net/http"

	"github.com/annolab/anx/internal/shared"
)

// Datasets retrieves all datasets in the given workspace.
func (c *Client) Datasets(ctx context.Context, workspaceID string) ([]Dataset, error) {
	var response struct {
		Items []Dataset `json:"items"`
	}
	path := fmt.Sprintf("/api/v1/me/datasets?workspace_id=%s", workspaceID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, err
	}
	return response.Items, nil
}

// Dataset retrieves a dataset by name within a workspace.
// Returns an error wrapping [shared.ErrDatasetNotFound] when no dataset matches.
func (c *Client) Dataset(ctx context.Context, workspaceID, name string) (*Dataset, error) {
	datasets, err := c.Datasets(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	for _, ds := range datasets {
		if ds.Name == name {
			return &ds, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", shared.ErrDatasetNotFound, name)
}

// createDatasetRequest is the payload for the dataset creation endpoint.
type createDatasetRequest struct {
	Name               string `json:"name"`
	WorkspaceID        string `json:"workspace_id"`
	Guidelines         string `json:"guidelines,omitempty"`
	AllowExtraMetadata bool   `json:"allow_extra_metadata"`
}

// fieldSettings and questionSettings are the discriminated setting payloads
// the server expects when building a dataset's schema.
type fieldSettings struct {
	Type        string `json:"type"`
	UseMarkdown bool   `json:"use_markdown"`
}

type questionSettings struct {
	Type    string           `json:"type"`
	Options []questionOption `json:"options"`
}

type questionOption struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

// CreateDataset creates a dataset with the given settings and publishes it.
//
// The server models dataset creation as a sequence: create the dataset shell,
// attach each field and question, then publish. Any step failing leaves the
// dataset in draft status on the server; the error is returned as-is.
func (c *Client) CreateDataset(ctx context.Context, workspaceID, name string, settings Settings) (*Dataset, error) {
	body := createDatasetRequest{
		Name:        name,
		WorkspaceID: workspaceID,
		Guidelines:  settings.Guidelines,
	}
	if settings.AllowExtraMetadata != nil {
		body.AllowExtraMetadata = *settings.AllowExtraMetadata
	}

	var ds Dataset
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/datasets", body, &ds); err != nil {
		return nil, err
	}

	for _, field := range settings.Fields {
		payload := map[string]any{
			"name":     field.Name,
			"title":    field.Title,
			"required": field.Required,
			"settings": fieldSettings{Type: "text", UseMarkdown: field.UseMarkdown},
		}
		path := fmt.Sprintf("/api/v1/datasets/%s/fields", ds.ID)
		if err := c.doRequest(ctx, http.MethodPost, path, payload, nil); err != nil {
			return nil, fmt.Errorf("failed to create field %q: %w", field.Name, err)
		}
	}

	for _, question := range settings.Questions {
		options := make([]questionOption, 0, len(question.Labels))
		for _, label := range question.Labels {
			options = append(options, questionOption{Value: label, Text: label})
		}
		payload := map[string]any{
			"name":     question.Name,
			"title":    question.Title,
			"required": question.Required,
			"settings": questionSettings{Type: "label_selection", Options: options},
		}
		path := fmt.Sprintf("/api/v1/datasets/%s/questions", ds.ID)
		if err := c.doRequest(ctx, http.MethodPost, path, payload, nil); err != nil {
			return nil, fmt.Errorf("failed to create question %q: %w", question.Name, err)
		}
	}

	var published Dataset
	path := fmt.Sprintf("/api/v1/datasets/%s/publish", ds.ID)
	if err := c.doRequest(ctx, http.MethodPut, path, nil, &published); err != nil {
		return nil, fmt.Errorf("failed to publish dataset: %w", err)
	}

	return &published, nil
}

// DatasetUpdate holds the dataset attributes that can be changed after creation.
// Nil pointers leave the attribute untouched.
type DatasetUpdate struct {
	Guidelines         *string `json:"guidelines,omitempty"`
	AllowExtraMetadata *bool   `json:"allow_extra_metadata,omitempty"`
}

// UpdateDataset patches a dataset's mutable attributes in place.
func (c *Client) UpdateDataset(ctx context.Context, datasetID string, update DatasetUpdate) (*Dataset, error) {
	var ds Dataset
	path := fmt.Sprintf("/api/v1/datasets/%s", datasetID)
	if err := c.doRequest(ctx, http.MethodPatch, path, update, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// DeleteDataset removes a dataset and all of its records.
func (c *Client) DeleteDataset(ctx context.Context, datasetID string) error {
	path := fmt.Sprintf("/api/v1/datasets/%s", datasetID)
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// Settings reconstructs a dataset's full settings from the schema endpoints.
func (c *Client) Settings(ctx context.Context, dataset *Dataset) (*Settings, error) {
	settings := Settings{
		Guidelines:         dataset.Guidelines,
		AllowExtraMetadata: &dataset.AllowExtraMetadata,
	}

	var fields struct {
		Items []struct {
			Name     string        `json:"name"`
			Title    string        `json:"title"`
			Required bool          `json:"required"`
			Settings fieldSettings `json:"settings"`
		} `json:"items"`
	}
	path := fmt.Sprintf("/api/v1/datasets/%s/fields", dataset.ID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &fields); err != nil {
		return nil, err
	}
	for _, f := range fields.Items {
		settings.Fields = append(settings.Fields, TextField{
			Name:        f.Name,
			Title:       f.Title,
			Required:    f.Required,
			UseMarkdown: f.Settings.UseMarkdown,
		})
	}

	var questions struct {
		Items []struct {
			Name     string           `json:"name"`
			Title    string           `json:"title"`
			Required bool             `json:"required"`
			Settings questionSettings `json:"settings"`
		} `json:"items"`
	}
	path = fmt.Sprintf("/api/v1/datasets/%s/questions", dataset.ID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &questions); err != nil {
		return nil, err
	}
	for _, q := range questions.Items {
		labels := make([]string, 0, len(q.Settings.Options))
		for _, opt := range q.Settings.Options {
			labels = append(labels, opt.Value)
		}
		settings.Questions = append(settings.Questions, LabelQuestion{
			Name:     q.Name,
			Title:    q.Title,
			Required: q.Required,
			Labels:   labels,
		})
	}

	return &settings, nil
}
