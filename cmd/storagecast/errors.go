package main

import (
	"errors"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/nerdgraph"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/nrql"
	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/source"
)

// Exit code constants
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitUsageError  = 2
	ExitConfigError = 3
	ExitQueryError  = 4
	ExitDataError   = 5
)

// codedError attaches an exit code to an error.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}

	var parseErr *nrql.ParseError
	var statusErr *nerdgraph.StatusError
	var queryErr *nerdgraph.QueryError
	switch {
	case errors.Is(err, storagecast.ErrConfiguration), errors.As(err, &parseErr):
		return ExitConfigError
	case errors.As(err, &statusErr), errors.As(err, &queryErr), errors.Is(err, nerdgraph.ErrEmptyQuery):
		return ExitQueryError
	case errors.Is(err, storagecast.ErrEmptyInput),
		errors.Is(err, storagecast.ErrMissingPrediction),
		errors.Is(err, storagecast.ErrMissingAnchor),
		errors.Is(err, storagecast.ErrDuplicateLabel),
		errors.Is(err, storagecast.ErrMissingField),
		errors.Is(err, source.ErrMissingResultSet),
		errors.Is(err, source.ErrMissingSheet):
		return ExitDataError
	}
	return ExitGeneral
}

// hintFor suggests a fix for common failures.
func hintFor(err error) string {
	var statusErr *nerdgraph.StatusError
	switch {
	case errors.As(err, &statusErr) && (statusErr.StatusCode == 401 || statusErr.StatusCode == 403):
		return "Check api_key (a NerdGraph user key, NRAK-...) and account_id"
	case errors.Is(err, nrql.ErrNoPredictLinear):
		return "The prediction query must contain predictLinear(<metric>, <N> days), or pass --days"
	case errors.Is(err, storagecast.ErrMissingField):
		return "Alias the query metric (e.g. AS total) or set fields.total / fields.used"
	case errors.Is(err, storagecast.ErrEmptyInput):
		return "The total query returned no data; widen SINCE or check the entity filter"
	case errors.Is(err, storagecast.ErrMissingAnchor):
		return "Use anchor_policy: carry-forward to start from the latest known used value"
	}
	return ""
}
