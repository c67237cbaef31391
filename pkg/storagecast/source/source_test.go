package source

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const savedResponse = `{
  "data": {
    "actor": {
      "account": {
        "used": {"results": [
          {"beginTimeSeconds": 1704067200, "endTimeSeconds": 1704153600, "used": 40},
          {"beginTimeSeconds": 1704153600, "endTimeSeconds": 1704240000, "used": 50}
        ]},
        "total": {"results": [
          {"beginTimeSeconds": 1704067200, "endTimeSeconds": 1704153600, "total": 100},
          {"beginTimeSeconds": 1704153600, "endTimeSeconds": 1704240000, "total": 95}
        ]},
        "prediction": {"results": [{"prediction": 130}]}
      }
    }
  }
}`

func TestReadResponse(t *testing.T) {
	res, err := ReadResponse(strings.NewReader(savedResponse))
	require.NoError(t, err)

	require.Len(t, res.Total, 2)
	require.Len(t, res.Used, 2)
	require.Len(t, res.Prediction, 1)
	assert.Equal(t, int64(1704153600), res.Total[1].BeginTimeSeconds)

	v, ok := res.Used[0].Value("used")
	assert.True(t, ok)
	assert.Equal(t, 40.0, v)
	v, _ = res.Prediction[0].Value("prediction")
	assert.Equal(t, 130.0, v)
}

func TestReadResponse_MissingSet(t *testing.T) {
	_, err := ReadResponse(strings.NewReader(`{"data": {"actor": {"account": {"total": {"results": []}}}}}`))
	assert.ErrorIs(t, err, ErrMissingResultSet)
}

func TestReadResponse_GraphQLError(t *testing.T) {
	_, err := ReadResponse(strings.NewReader(`{"data": null, "errors": [{"message": "NRQL Syntax Error", "path": ["actor", "account", "used"]}]}`))
	var gqlErr GraphQLError
	require.ErrorAs(t, err, &gqlErr)
	assert.Contains(t, gqlErr.Error(), "NRQL Syntax Error")
}

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}

	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"total": {
			{"beginTimeSeconds", "total"},
			{1704067200, 100},
			{1704153600, 95.5},
		},
		"Used": {
			{"beginTimeSeconds", "used"},
			{1704067200, 40},
			{1704153600, nil},
		},
		"prediction": {
			{"prediction"},
			{130},
		},
	})

	res, err := ReadWorkbook(path)
	require.NoError(t, err)

	require.Len(t, res.Total, 2)
	v, _ := res.Total[1].Value("total")
	assert.Equal(t, 95.5, v)
	assert.Equal(t, int64(1704067200), res.Total[0].BeginTimeSeconds)

	require.Len(t, res.Used, 2)
	_, ok := res.Used[1].Value("used")
	assert.False(t, ok, "empty cell should leave used unset")

	v, _ = res.Prediction[0].Value("prediction")
	assert.Equal(t, 130.0, v)
}

func TestReadWorkbook_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"total": {{"beginTimeSeconds", "total"}, {1704067200, 100}},
	})

	_, err := ReadWorkbook(path)
	assert.ErrorIs(t, err, ErrMissingSheet)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"123", 123, true},
		{"123.45", 123.45, true},
		{"-100", -100, true},
		{"1e3", 1000, true},
		{"hello", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseValue(tt.input)
		assert.Equal(t, tt.want, got, "parseValue(%q)", tt.input)
		assert.Equal(t, tt.ok, ok, "parseValue(%q)", tt.input)
	}
}

func TestWriteResponse_RoundTrip(t *testing.T) {
	res, err := ReadResponse(strings.NewReader(savedResponse))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteResponse(&buf, res))

	again, err := ReadResponse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, again.Used, 2)
	assert.Equal(t, int64(1704240000), again.Used[1].EndTimeSeconds)
	v, _ := again.Total[0].Value("total")
	assert.Equal(t, 100.0, v)
}
