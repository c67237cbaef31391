package source

import "errors"

// ErrMissingResultSet indicates one of total, used or prediction is absent.
var ErrMissingResultSet = errors.New("missing result set")

// ErrMissingSheet indicates a workbook lacks a result set sheet.
var ErrMissingSheet = errors.New("missing sheet")
