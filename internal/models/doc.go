// Package models defines domain entities and persistence interfaces for the anx dataset manager.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects: lightweight views of remote server data used by
// the CLI and TUI layers (see [github.com/annolab/anx/internal/argilla]).
//
// 2. Persistent entities: database-backed models with full lifecycle
// management. [MigrationJob] tracks dataset migration runs with progress
// counters and results.
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
