// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/annolab/anx/internal/argilla"
)

// MockAPI is a configurable test double for the Argilla client surface.
//
// Each method delegates to the corresponding Func field when set and returns
// zero values otherwise.
type MockAPI struct {
	MeFunc              func(ctx context.Context) (*argilla.User, error)
	WorkspacesFunc      func(ctx context.Context) ([]argilla.Workspace, error)
	WorkspaceFunc       func(ctx context.Context, name string) (*argilla.Workspace, error)
	CreateWorkspaceFunc func(ctx context.Context, name string) (*argilla.Workspace, error)
	DatasetsFunc        func(ctx context.Context, workspaceID string) ([]argilla.Dataset, error)
	DatasetFunc         func(ctx context.Context, workspaceID, name string) (*argilla.Dataset, error)
	CreateDatasetFunc   func(ctx context.Context, workspaceID, name string, settings argilla.Settings) (*argilla.Dataset, error)
	UpdateDatasetFunc   func(ctx context.Context, datasetID string, update argilla.DatasetUpdate) (*argilla.Dataset, error)
	DeleteDatasetFunc   func(ctx context.Context, datasetID string) error
	SettingsFunc        func(ctx context.Context, dataset *argilla.Dataset) (*argilla.Settings, error)
	RecordsFunc         func(ctx context.Context, datasetID string, offset, limit int) (*argilla.RecordPage, error)
	AddRecordsFunc      func(ctx context.Context, datasetID string, records []argilla.Record) error
}

func (m *MockAPI) Me(ctx context.Context) (*argilla.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx)
	}
	return &argilla.User{ID: "user-1", Username: "tester"}, nil
}

func (m *MockAPI) Workspaces(ctx context.Context) ([]argilla.Workspace, error) {
	if m.WorkspacesFunc != nil {
		return m.WorkspacesFunc(ctx)
	}
	return []argilla.Workspace{}, nil
}

func (m *MockAPI) Workspace(ctx context.Context, name string) (*argilla.Workspace, error) {
	if m.WorkspaceFunc != nil {
		return m.WorkspaceFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockAPI) CreateWorkspace(ctx context.Context, name string) (*argilla.Workspace, error) {
	if m.CreateWorkspaceFunc != nil {
		return m.CreateWorkspaceFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockAPI) Datasets(ctx context.Context, workspaceID string) ([]argilla.Dataset, error) {
	if m.DatasetsFunc != nil {
		return m.DatasetsFunc(ctx, workspaceID)
	}
	return []argilla.Dataset{}, nil
}

func (m *MockAPI) Dataset(ctx context.Context, workspaceID, name string) (*argilla.Dataset, error) {
	if m.DatasetFunc != nil {
		return m.DatasetFunc(ctx, workspaceID, name)
	}
	return nil, nil
}

func (m *MockAPI) CreateDataset(ctx context.Context, workspaceID, name string, settings argilla.Settings) (*argilla.Dataset, error) {
	if m.CreateDatasetFunc != nil {
		return m.CreateDatasetFunc(ctx, workspaceID, name, settings)
	}
	return nil, nil
}

func (m *MockAPI) UpdateDataset(ctx context.Context, datasetID string, update argilla.DatasetUpdate) (*argilla.Dataset, error) {
	if m.UpdateDatasetFunc != nil {
		return m.UpdateDatasetFunc(ctx, datasetID, update)
	}
	return nil, nil
}

func (m *MockAPI) DeleteDataset(ctx context.Context, datasetID string) error {
	if m.DeleteDatasetFunc != nil {
		return m.DeleteDatasetFunc(ctx, datasetID)
	}
	return nil
}

func (m *MockAPI) Settings(ctx context.Context, dataset *argilla.Dataset) (*argilla.Settings, error) {
	if m.SettingsFunc != nil {
		return m.SettingsFunc(ctx, dataset)
	}
	return &argilla.Settings{}, nil
}

func (m *MockAPI) Records(ctx context.Context, datasetID string, offset, limit int) (*argilla.RecordPage, error) {
	if m.RecordsFunc != nil {
		return m.RecordsFunc(ctx, datasetID, offset, limit)
	}
	return &argilla.RecordPage{}, nil
}

func (m *MockAPI) AddRecords(ctx context.Context, datasetID string, records []argilla.Record) error {
	if m.AddRecordsFunc != nil {
		return m.AddRecordsFunc(ctx, datasetID, records)
	}
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
