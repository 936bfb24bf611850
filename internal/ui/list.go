package ui

import (
	"fmt"

	"github.com/annolab/anx/internal/argilla"
	"github.com/charmbracelet/bubbles/list"
)

var (
	_ list.Item = workspaceItem{}
	_ list.Item = datasetItem{}
)

// workspaceItem wraps [argilla.Workspace] to implement [list.Item].
type workspaceItem struct {
	workspace argilla.Workspace
}

func (i workspaceItem) FilterValue() string { return i.workspace.Name }
func (i workspaceItem) Title() string       { return i.workspace.Name }
func (i workspaceItem) Description() string { return i.workspace.ID }

// datasetItem wraps [argilla.Dataset] to implement [list.Item].
type datasetItem struct {
	dataset argilla.Dataset
}

func (i datasetItem) FilterValue() string { return i.dataset.Name }
func (i datasetItem) Title() string       { return i.dataset.Name }
func (i datasetItem) Description() string {
	desc := i.dataset.Status
	if i.dataset.Guidelines != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.dataset.Guidelines)
	}
	return desc
}
