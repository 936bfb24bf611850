package argilla

import "time"

// User represents the authenticated Argilla user returned by /api/v1/me.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Workspace represents a named grouping of datasets on the server.
type Workspace struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InsertedAt time.Time `json:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Dataset represents a named collection of records within a workspace.
type Dataset struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	WorkspaceID        string    `json:"workspace_id"`
	Guidelines         string    `json:"guidelines"`
	AllowExtraMetadata bool      `json:"allow_extra_metadata"`
	Status             string    `json:"status"` // draft, ready
	InsertedAt         time.Time `json:"inserted_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TextField describes a text input field in a dataset's schema.
type TextField struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Required    bool   `json:"required"`
	UseMarkdown bool   `json:"use_markdown"`
}

// LabelQuestion describes a single-label annotation question.
type LabelQuestion struct {
	Name     string   `json:"name"`
	Title    string   `json:"title,omitempty"`
	Required bool     `json:"required"`
	Labels   []string `json:"labels"`
}

// Settings is the annotation schema of a dataset: guidelines text, input
// fields, and questions for annotators. AllowExtraMetadata is nil when the
// caller did not specify it, so updates can leave the server value alone.
type Settings struct {
	Guidelines         string          `json:"guidelines"`
	AllowExtraMetadata *bool           `json:"allow_extra_metadata,omitempty"`
	Fields             []TextField     `json:"fields"`
	Questions          []LabelQuestion `json:"questions"`
}

// DefaultSettings returns the schema used when none is supplied: a single
// text field and a single label question.
func DefaultSettings(guidelines string, labels []string) Settings {
	if len(labels) == 0 {
		labels = []string{"positive", "negative"}
	}
	return Settings{
		Guidelines: guidelines,
		Fields:     []TextField{{Name: "text", Required: true}},
		Questions:  []LabelQuestion{{Name: "label", Required: true, Labels: labels}},
	}
}

// Record is a single annotatable unit of data. The fields payload is opaque
// to this layer and passed through migrations untouched unless a transform
// is supplied.
type Record struct {
	ID         string         `json:"id,omitempty"`
	Fields     map[string]any `json:"fields"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	ExternalID string         `json:"external_id,omitempty"`
}

// RecordPage is one page of a dataset's records.
type RecordPage struct {
	Items []Record `json:"items"`
	Total int      `json:"total"`
}
