package nerdgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/source"
)

// ErrEmptyQuery indicates one of the three NRQL queries is blank.
var ErrEmptyQuery = errors.New("empty nrql query")

// StatusError represents a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("nerdgraph: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("nerdgraph: http status %d: %s", e.StatusCode, e.Body)
}

// QueryError represents GraphQL-level errors in a 200 response.
type QueryError struct {
	Errors []source.GraphQLError
}

func (e *QueryError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Error()
	}
	return "nerdgraph: " + strings.Join(msgs, "; ")
}
