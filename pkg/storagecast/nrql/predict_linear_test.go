package nrql

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePredictLinear(t *testing.T) {
	tests := []struct {
		query  string
		metric string
		amount int
		unit   Unit
		days   int
	}{
		{
			"SELECT predictLinear(host.diskUsedBytes, 90 days)/10e8 as prediction FROM Metric WHERE entity.guid = 'abc'",
			"host.diskUsedBytes", 90, UnitDay, 90,
		},
		{"SELECT predictLinear(x,1 day) FROM Metric", "x", 1, UnitDay, 1},
		{"select PREDICTLINEAR ( x , 2 Weeks ) from Metric", "x", 2, UnitWeek, 14},
		{"SELECT predictLinear(average(diskUsed) / 1024, 30 days) FROM Metric", "average(diskUsed) / 1024", 30, UnitDay, 30},
		{"SELECT predictLinear(filter(used, WHERE device = 'a,b'), 7 days) FROM Metric", "filter(used, WHERE device = 'a,b')", 7, UnitDay, 7},
		{"SELECT predictLinear(used, 0 days) FROM Metric", "used", 0, UnitDay, 0},
		{"SELECT predictLinearity, predictLinear(used, 5 days) FROM Metric", "used", 5, UnitDay, 5},
	}

	for _, tt := range tests {
		got, err := ParsePredictLinear(tt.query)
		if !assert.NoError(t, err, tt.query) {
			continue
		}
		assert.Equal(t, tt.metric, got.Metric, tt.query)
		assert.Equal(t, tt.amount, got.Amount, tt.query)
		assert.Equal(t, tt.unit, got.Unit, tt.query)
		assert.Equal(t, tt.days, got.Days(), tt.query)
	}
}

func TestParsePredictLinear_Errors(t *testing.T) {
	tests := []struct {
		query string
		err   error
	}{
		{"SELECT latest(host.diskUsedBytes) FROM Metric", ErrNoPredictLinear},
		{"", ErrNoPredictLinear},
		{"SELECT predictLinear(host.diskUsedBytes) FROM Metric", ErrSyntax},
		{"SELECT predictLinear(host.diskUsedBytes, days) FROM Metric", ErrSyntax},
		{"SELECT predictLinear(host.diskUsedBytes, -3 days) FROM Metric", ErrSyntax},
		{"SELECT predictLinear(host.diskUsedBytes, 3) FROM Metric", ErrSyntax},
		{"SELECT predictLinear(host.diskUsedBytes, 3 days FROM Metric", ErrSyntax},
		{"SELECT predictLinear(, 3 days) FROM Metric", ErrSyntax},
		{"SELECT predictLinear(filter(x, WHERE a = 'b), 3 days)", ErrSyntax},
		{"SELECT predictLinear(host.diskUsedBytes, 99999999999999999999 days) FROM Metric", ErrSyntax},
		{"SELECT predictLinear(host.diskUsedBytes, " + strconv.Itoa(math.MaxInt/7+1) + " weeks) FROM Metric", ErrSyntax},
		{"SELECT predictLinear(host.diskUsedBytes, 12 hours) FROM Metric", ErrUnsupportedUnit},
		{"SELECT predictLinear(host.diskUsedBytes, 1 month) FROM Metric", ErrUnsupportedUnit},
	}

	for _, tt := range tests {
		_, err := ParsePredictLinear(tt.query)
		assert.ErrorIs(t, err, tt.err, tt.query)
		var perr *ParseError
		assert.ErrorAs(t, err, &perr, tt.query)
	}
}

func TestHorizonDays(t *testing.T) {
	days, err := HorizonDays("SELECT predictLinear(host.diskUsedBytes, 4 weeks) FROM Metric")
	require.NoError(t, err)
	assert.Equal(t, 28, days)
}

func TestHorizonDays_LargestWeeks(t *testing.T) {
	weeks := math.MaxInt / 7
	days, err := HorizonDays("SELECT predictLinear(x, " + strconv.Itoa(weeks) + " weeks) FROM Metric")
	require.NoError(t, err)
	assert.Equal(t, weeks*7, days)
	assert.Positive(t, days)
}
