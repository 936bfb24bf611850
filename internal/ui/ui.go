package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/annolab/anx/internal/argilla"
	"github.com/annolab/anx/internal/shared"
	"github.com/annolab/anx/internal/tasks"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	WorkspaceListView ViewState = iota
	DatasetListView
	ConfirmView
	CloneView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx               context.Context
	view              ViewState
	api               tasks.API
	manager           *tasks.Manager
	width             int
	height            int
	workspaceList     list.Model
	workspaces        []argilla.Workspace
	datasetList       list.Model
	selectedWorkspace *argilla.Workspace
	selectedDataset   *argilla.Dataset
	progressChan      chan tasks.ProgressUpdate
	progress          tasks.ProgressUpdate
	result            *argilla.Dataset
	err               error
	help              help.Model
	keys              keyMap
}

type workspacesFetchedMsg struct {
	workspaces []argilla.Workspace
	err        error
}

type datasetsFetchedMsg struct {
	workspace *argilla.Workspace
	datasets  []argilla.Dataset
	err       error
}

type progressUpdateMsg tasks.ProgressUpdate

type cloneCompleteMsg struct {
	result *argilla.Dataset
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, api tasks.API, manager *tasks.Manager) *Model {
	return &Model{
		ctx:     ctx,
		view:    WorkspaceListView,
		api:     api,
		manager: manager,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by fetching workspaces from the server.
func (m *Model) Init() tea.Cmd {
	return m.fetchWorkspaces()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.workspaceList.Width() == 0 {
			m.workspaceList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.datasetList.Width() == 0 {
			m.datasetList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case WorkspaceListView:
			return m.handleWorkspaceListKeys(msg)
		case DatasetListView:
			return m.handleDatasetListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case workspacesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.workspaces = msg.workspaces
		items := make([]list.Item, len(msg.workspaces))
		for i, ws := range msg.workspaces {
			items[i] = workspaceItem{workspace: ws}
		}
		m.workspaceList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.workspaceList.Title = "Workspaces"
		m.workspaceList.SetSize(m.width-4, m.height-8)
		return m, nil

	case datasetsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = WorkspaceListView
			return m, nil
		}
		m.selectedWorkspace = msg.workspace
		items := make([]list.Item, len(msg.datasets))
		for i, ds := range msg.datasets {
			items[i] = datasetItem{dataset: ds}
		}
		m.datasetList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.datasetList.Title = fmt.Sprintf("Datasets in '%s'", msg.workspace.Name)
		m.datasetList.SetSize(m.width-4, m.height-8)
		m.view = DatasetListView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case cloneCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case WorkspaceListView:
		return m.renderWorkspaceList()
	case DatasetListView:
		return m.renderDatasetList()
	case ConfirmView:
		return m.renderConfirm()
	case CloneView:
		return m.renderClone()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleWorkspaceListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.workspaceList.SelectedItem()
		if selected != nil {
			if ws, ok := selected.(workspaceItem); ok {
				return m, m.fetchDatasets(ws.workspace)
			}
		}
	}

	var cmd tea.Cmd
	m.workspaceList, cmd = m.workspaceList.Update(msg)
	return m, cmd
}

func (m *Model) handleDatasetListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = WorkspaceListView
		return m, nil
	case "enter":
		selected := m.datasetList.SelectedItem()
		if selected != nil {
			if ds, ok := selected.(datasetItem); ok {
				dataset := ds.dataset
				m.selectedDataset = &dataset
				m.view = ConfirmView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.datasetList, cmd = m.datasetList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = DatasetListView
		return m, nil
	case "y":
		m.view = CloneView
		return m, m.startClone()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = WorkspaceListView
		m.selectedDataset = nil
		m.result = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case WorkspaceListView:
		m.workspaceList, cmd = m.workspaceList.Update(msg)
	case DatasetListView:
		m.datasetList, cmd = m.datasetList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchWorkspaces() tea.Cmd {
	return func() tea.Msg {
		workspaces, err := m.api.Workspaces(m.ctx)
		return workspacesFetchedMsg{workspaces: workspaces, err: err}
	}
}

func (m *Model) fetchDatasets(workspace argilla.Workspace) tea.Cmd {
	return func() tea.Msg {
		datasets, err := m.api.Datasets(m.ctx, workspace.ID)
		return datasetsFetchedMsg{workspace: &workspace, datasets: datasets, err: err}
	}
}

func (m *Model) startClone() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	cloneName := shared.VersionName(m.selectedDataset.Name, time.Now())

	progressChan := m.progressChan
	go func() {
		result, err := m.manager.Clone(m.ctx, m.selectedWorkspace.Name, m.selectedDataset.Name, cloneName, "", progressChan)
		m.result = result
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return cloneCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return cloneCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderWorkspaceList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.workspaceList.View(), helpView)
}

func (m *Model) renderDatasetList() string {
	cloneKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "clone"),
	)
	helpKeys := []key.Binding{cloneKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.datasetList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Clone '%s' into a new version?", m.selectedDataset.Name))
	info := fmt.Sprintf("\nWorkspace: %s\nDataset: %s\nStatus: %s\n",
		m.selectedWorkspace.Name, m.selectedDataset.Name, m.selectedDataset.Status)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderClone() string {
	title := styles.title.Render("Cloning Dataset")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchSource:
		phase = "Fetching source dataset..."
	case tasks.CreateTarget:
		phase = "Creating target dataset..."
	case tasks.FetchRecords, tasks.AppendRecords:
		phase = fmt.Sprintf("Copying records (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Clone failed: %v\n\nPress r to restart, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to restart, q to quit")
	}

	title := styles.ok.Render("✓ Clone Complete!")
	info := fmt.Sprintf("\nSource: %s/%s\nNew dataset: %s\nStatus: %s",
		m.selectedWorkspace.Name, m.selectedDataset.Name, m.result.Name, m.result.Status)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
