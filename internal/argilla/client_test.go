package argilla

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/annolab/anx/internal/shared"
)

func newTestClient(serverURL string) *Client {
	return NewClient(shared.ArgillaConfig{APIURL: serverURL, APIKey: "test.apikey"}, nil)
}

func TestNewClient(t *testing.T) {
	t.Run("empty URL uses default", func(t *testing.T) {
		client := NewClient(shared.ArgillaConfig{APIKey: "k"}, nil)
		if client.BaseURL() != "http://localhost:6900" {
			t.Errorf("BaseURL() = %s, want default", client.BaseURL())
		}
	})

	t.Run("custom URL is kept", func(t *testing.T) {
		client := NewClient(shared.ArgillaConfig{APIURL: "https://argilla.example.com", APIKey: "k"}, nil)
		if client.BaseURL() != "https://argilla.example.com" {
			t.Errorf("BaseURL() = %s", client.BaseURL())
		}
	})

	t.Run("positive rate limit installs limiter", func(t *testing.T) {
		client := NewClient(shared.ArgillaConfig{APIKey: "k", RateLimit: 5}, nil)
		if client.limiter == nil {
			t.Error("expected limiter to be set")
		}
	})

	t.Run("zero rate limit leaves limiter nil", func(t *testing.T) {
		client := NewClient(shared.ArgillaConfig{APIKey: "k"}, nil)
		if client.limiter != nil {
			t.Error("expected no limiter")
		}
	})
}

func TestClientRequests(t *testing.T) {
	t.Run("sends API key header", func(t *testing.T) {
		var gotKey string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("X-Argilla-Api-Key")
			json.NewEncoder(w).Encode(User{ID: "u1", Username: "owner"})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		if _, err := client.Me(context.Background()); err != nil {
			t.Fatalf("Me() error = %v", err)
		}
		if gotKey != "test.apikey" {
			t.Errorf("API key header = %q, want test.apikey", gotKey)
		}
	})

	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Me(context.Background())
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("server detail surfaces in error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"detail": "name already exists"})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.CreateWorkspace(context.Background(), "dup")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "name already exists") {
			t.Errorf("error %q missing server detail", got)
		}
	})
}

func TestWorkspaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/me/workspaces":
			json.NewEncoder(w).Encode(map[string]any{
				"items": []Workspace{{ID: "ws-1", Name: "research"}, {ID: "ws-2", Name: "production"}},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/workspaces":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(Workspace{ID: "ws-3", Name: body["name"]})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	t.Run("Workspaces lists all", func(t *testing.T) {
		workspaces, err := client.Workspaces(ctx)
		if err != nil {
			t.Fatalf("Workspaces() error = %v", err)
		}
		if len(workspaces) != 2 {
			t.Errorf("got %d workspaces, want 2", len(workspaces))
		}
	})

	t.Run("Workspace finds by name", func(t *testing.T) {
		ws, err := client.Workspace(ctx, "production")
		if err != nil {
			t.Fatalf("Workspace() error = %v", err)
		}
		if ws.ID != "ws-2" {
			t.Errorf("ID = %s, want ws-2", ws.ID)
		}
	})

	t.Run("Workspace missing wraps ErrWorkspaceNotFound", func(t *testing.T) {
		_, err := client.Workspace(ctx, "missing")
		if !errors.Is(err, shared.ErrWorkspaceNotFound) {
			t.Errorf("expected ErrWorkspaceNotFound, got %v", err)
		}
	})

	t.Run("CreateWorkspace returns new workspace", func(t *testing.T) {
		ws, err := client.CreateWorkspace(ctx, "staging")
		if err != nil {
			t.Fatalf("CreateWorkspace() error = %v", err)
		}
		if ws.Name != "staging" || ws.ID != "ws-3" {
			t.Errorf("got %+v", ws)
		}
	})
}

func TestDatasets(t *testing.T) {
	var published bool
	var fieldsCreated, questionsCreated int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/me/datasets":
			if r.URL.Query().Get("workspace_id") != "ws-1" {
				json.NewEncoder(w).Encode(map[string]any{"items": []Dataset{}})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"items": []Dataset{{ID: "ds-1", Name: "reviews", WorkspaceID: "ws-1", Status: "ready"}},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/datasets":
			var body createDatasetRequest
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(Dataset{ID: "ds-2", Name: body.Name, WorkspaceID: body.WorkspaceID, Status: "draft"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/datasets/ds-2/fields":
			fieldsCreated++
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/datasets/ds-2/questions":
			questionsCreated++
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPut && r.URL.Path == "/api/v1/datasets/ds-2/publish":
			published = true
			json.NewEncoder(w).Encode(Dataset{ID: "ds-2", Name: "labeled", WorkspaceID: "ws-1", Status: "ready"})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/datasets/ds-1":
			var update DatasetUpdate
			json.NewDecoder(r.Body).Decode(&update)
			ds := Dataset{ID: "ds-1", Name: "reviews", WorkspaceID: "ws-1", Status: "ready"}
			if update.Guidelines != nil {
				ds.Guidelines = *update.Guidelines
			}
			json.NewEncoder(w).Encode(ds)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/datasets/ds-1":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/datasets/ds-1/fields":
			json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
				{"name": "text", "required": true, "settings": map[string]any{"type": "text", "use_markdown": true}},
			}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/datasets/ds-1/questions":
			json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
				{"name": "label", "required": true, "settings": map[string]any{
					"type": "label_selection",
					"options": []map[string]string{
						{"value": "spam", "text": "spam"},
						{"value": "ham", "text": "ham"},
					},
				}},
			}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	t.Run("Dataset finds by name", func(t *testing.T) {
		ds, err := client.Dataset(ctx, "ws-1", "reviews")
		if err != nil {
			t.Fatalf("Dataset() error = %v", err)
		}
		if ds.ID != "ds-1" {
			t.Errorf("ID = %s, want ds-1", ds.ID)
		}
	})

	t.Run("Dataset missing wraps ErrDatasetNotFound", func(t *testing.T) {
		_, err := client.Dataset(ctx, "ws-1", "missing")
		if !errors.Is(err, shared.ErrDatasetNotFound) {
			t.Errorf("expected ErrDatasetNotFound, got %v", err)
		}
	})

	t.Run("CreateDataset builds schema and publishes", func(t *testing.T) {
		settings := DefaultSettings("guidelines", []string{"spam", "ham"})
		ds, err := client.CreateDataset(ctx, "ws-1", "labeled", settings)
		if err != nil {
			t.Fatalf("CreateDataset() error = %v", err)
		}
		if ds.Status != "ready" {
			t.Errorf("Status = %s, want ready", ds.Status)
		}
		if fieldsCreated != 1 || questionsCreated != 1 {
			t.Errorf("fields = %d, questions = %d, want 1 each", fieldsCreated, questionsCreated)
		}
		if !published {
			t.Error("dataset was not published")
		}
	})

	t.Run("UpdateDataset patches guidelines", func(t *testing.T) {
		guidelines := "be careful"
		ds, err := client.UpdateDataset(ctx, "ds-1", DatasetUpdate{Guidelines: &guidelines})
		if err != nil {
			t.Fatalf("UpdateDataset() error = %v", err)
		}
		if ds.Guidelines != "be careful" {
			t.Errorf("Guidelines = %q", ds.Guidelines)
		}
	})

	t.Run("DeleteDataset succeeds", func(t *testing.T) {
		if err := client.DeleteDataset(ctx, "ds-1"); err != nil {
			t.Fatalf("DeleteDataset() error = %v", err)
		}
	})

	t.Run("Settings rebuilds schema from endpoints", func(t *testing.T) {
		ds := &Dataset{ID: "ds-1", Guidelines: "g", AllowExtraMetadata: true}
		settings, err := client.Settings(ctx, ds)
		if err != nil {
			t.Fatalf("Settings() error = %v", err)
		}
		if settings.Guidelines != "g" || settings.AllowExtraMetadata == nil || !*settings.AllowExtraMetadata {
			t.Errorf("dataset attributes not carried: %+v", settings)
		}
		if len(settings.Fields) != 1 || !settings.Fields[0].UseMarkdown {
			t.Errorf("fields = %+v", settings.Fields)
		}
		if len(settings.Questions) != 1 || len(settings.Questions[0].Labels) != 2 {
			t.Errorf("questions = %+v", settings.Questions)
		}
		if settings.Questions[0].Labels[0] != "spam" {
			t.Errorf("labels = %v", settings.Questions[0].Labels)
		}
	})
}

func TestRecords(t *testing.T) {
	t.Run("Records defaults limit to 100", func(t *testing.T) {
		var gotLimit string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotLimit = r.URL.Query().Get("limit")
			json.NewEncoder(w).Encode(RecordPage{Items: []Record{}, Total: 0})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		if _, err := client.Records(context.Background(), "ds-1", 0, 0); err != nil {
			t.Fatalf("Records() error = %v", err)
		}
		if gotLimit != "100" {
			t.Errorf("limit = %s, want 100", gotLimit)
		}
	})

	t.Run("AddRecords strips server-assigned ids", func(t *testing.T) {
		var gotBody struct {
			Items []Record `json:"items"`
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte("{}"))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		records := []Record{
			{ID: "rec-1", Fields: map[string]any{"text": "hello"}},
			{ID: "rec-2", Fields: map[string]any{"text": "world"}},
		}
		if err := client.AddRecords(context.Background(), "ds-1", records); err != nil {
			t.Fatalf("AddRecords() error = %v", err)
		}
		if len(gotBody.Items) != 2 {
			t.Fatalf("got %d items, want 2", len(gotBody.Items))
		}
		for i, item := range gotBody.Items {
			if item.ID != "" {
				t.Errorf("item %d kept id %q", i, item.ID)
			}
		}
		if records[0].ID != "rec-1" {
			t.Error("caller's slice was mutated")
		}
	})

	t.Run("AddRecords with no records is a no-op", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		if err := client.AddRecords(context.Background(), "ds-1", nil); err != nil {
			t.Fatalf("AddRecords() error = %v", err)
		}
		if called {
			t.Error("expected no request for empty batch")
		}
	})
}

func TestDefaultSettings(t *testing.T) {
	t.Run("empty labels fall back to sentiment pair", func(t *testing.T) {
		settings := DefaultSettings("", nil)
		want := []string{"positive", "negative"}
		got := settings.Questions[0].Labels
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("labels = %v, want %v", got, want)
		}
	})

	t.Run("custom labels are kept", func(t *testing.T) {
		settings := DefaultSettings("g", []string{"a", "b", "c"})
		if len(settings.Questions[0].Labels) != 3 {
			t.Errorf("labels = %v", settings.Questions[0].Labels)
		}
		if settings.Guidelines != "g" {
			t.Errorf("guidelines = %q", settings.Guidelines)
		}
	})
}
