// Package argilla is a thin client for the Argilla annotation server's HTTP API.
//
// The [Client] covers the resources this tool orchestrates: the authenticated
// user ([Client.Me]), workspaces, datasets with their settings (fields,
// questions, guidelines), and dataset records with offset pagination.
//
// Argilla API reference: https://docs.argilla.io/latest/reference/argilla-server/
package argilla
