// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for dataset management:
//  1. [WorkspaceListView] : Browse and select workspaces
//  2. [DatasetListView] : Browse datasets within a workspace
//  3. [ConfirmView] : Confirm a dataset clone operation
//  4. [CloneView] : Monitor real-time progress updates
//  5. [ResultView] : Display the outcome
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the Manager, providing non-blocking status reporting during migrations.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
