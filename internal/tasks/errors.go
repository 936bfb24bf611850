package tasks

import (
	"errors"
	"fmt"
)

// DatasetError is the single error kind surfaced by all manager operations.
// It carries the failed operation and the names involved; Offset is the
// record offset a migration had reached, or -1 when not applicable.
type DatasetError struct {
	Op        string
	Workspace string
	Dataset   string
	Offset    int
	Err       error
}

func (e *DatasetError) Error() string {
	msg := e.Op
	if e.Workspace != "" {
		msg += fmt.Sprintf(" workspace %q", e.Workspace)
	}
	if e.Dataset != "" {
		msg += fmt.Sprintf(" dataset %q", e.Dataset)
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// wrapErr wraps err in a DatasetError unless it already is one, in which case
// it propagates unchanged so the innermost context wins.
func wrapErr(err error, op, workspace, dataset string) error {
	if err == nil {
		return nil
	}
	var de *DatasetError
	if errors.As(err, &de) {
		return err
	}
	return &DatasetError{Op: op, Workspace: workspace, Dataset: dataset, Offset: -1, Err: err}
}

// wrapErrAt is wrapErr with a record offset for migration batch failures.
func wrapErrAt(err error, op, workspace, dataset string, offset int) error {
	if err == nil {
		return nil
	}
	var de *DatasetError
	if errors.As(err, &de) {
		return err
	}
	return &DatasetError{Op: op, Workspace: workspace, Dataset: dataset, Offset: offset, Err: err}
}
