package storagecast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

func decodeRecords(t *testing.T, s string) []models.Record {
	t.Helper()
	var records []models.Record
	require.NoError(t, json.Unmarshal([]byte(s), &records))
	return records
}

func TestForecast(t *testing.T) {
	in := Input{
		Total: decodeRecords(t, `[
			{"beginTimeSeconds": 1704067200, "endTimeSeconds": 1704153600, "total": 100},
			{"beginTimeSeconds": 1704153600, "endTimeSeconds": 1704240000, "total": 95}
		]`),
		Used: decodeRecords(t, `[
			{"beginTimeSeconds": 1704067200, "endTimeSeconds": 1704153600, "used": 40},
			{"beginTimeSeconds": 1704153600, "endTimeSeconds": 1704240000, "used": 50}
		]`),
		Prediction:  decodeRecords(t, `[{"prediction": 130}]`),
		Fields:      DefaultFieldNames(),
		HorizonDays: 2,
	}

	p, err := Forecast(in, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, p.Points, 4)
	assert.Equal(t, "1/4/2024", p.Points[3].Label)
	requireValue(t, 130, p.Points[3].Prediction)
	assert.Equal(t, 130.0, p.Target)
}

func TestForecast_WrongFieldName(t *testing.T) {
	in := Input{
		Total:       decodeRecords(t, `[{"beginTimeSeconds": 1704067200, "latest.host.disk.totalBytes": 100}]`),
		Used:        decodeRecords(t, `[{"beginTimeSeconds": 1704067200, "used": 40}]`),
		Prediction:  decodeRecords(t, `[{"prediction": 130}]`),
		Fields:      DefaultFieldNames(),
		HorizonDays: 1,
	}

	_, err := Forecast(in, DefaultOptions())
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "latest.host.disk.totalBytes")
}

func TestNormalize_KeepsEmptyBuckets(t *testing.T) {
	records := decodeRecords(t, `[
		{"beginTimeSeconds": 1704067200, "used": 40},
		{"beginTimeSeconds": 1704153600, "used": null},
		{"beginTimeSeconds": 1704240000, "used": 42}
	]`)

	samples, err := Normalize("used", records, "used")
	require.NoError(t, err)
	assert.Equal(t, []models.Sample{
		{TimestampSeconds: 1704067200, Value: 40},
		{TimestampSeconds: 1704153600, Empty: true},
		{TimestampSeconds: 1704240000, Value: 42},
	}, samples)
}

func TestForecast_NullTotalBucket(t *testing.T) {
	in := Input{
		Total: decodeRecords(t, `[
			{"beginTimeSeconds": 1704067200, "total": 100},
			{"beginTimeSeconds": 1704153600, "total": null},
			{"beginTimeSeconds": 1704240000, "total": 100}
		]`),
		Used: decodeRecords(t, `[
			{"beginTimeSeconds": 1704067200, "used": 40},
			{"beginTimeSeconds": 1704153600, "used": 45},
			{"beginTimeSeconds": 1704240000, "used": null}
		]`),
		Prediction:  decodeRecords(t, `[{"prediction": 55}]`),
		Fields:      DefaultFieldNames(),
		HorizonDays: 1,
	}

	p, err := Forecast(in, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, len(in.Total), p.HistoryLen)
	assert.Empty(t, p.Dropped)

	labels := make([]string, len(p.Points))
	for i, pt := range p.Points {
		labels[i] = pt.Label
	}
	assert.Equal(t, []string{"1/1/2024", "1/2/2024", "1/3/2024", "1/4/2024"}, labels)
	assert.Nil(t, p.Points[1].Available)
	requireValue(t, 45, p.Points[1].Used)
	requireValue(t, 55, p.Points[3].Prediction)
}

func TestNormalize_EmptySeries(t *testing.T) {
	samples, err := Normalize("total", nil, "total")
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestPredictionValue(t *testing.T) {
	tests := []struct {
		name    string
		results string
		field   string
		want    float64
		wantErr bool
	}{
		{"named field", `[{"prediction": 12.5}]`, "prediction", 12.5, false},
		{"single field autodetect", `[{"predictLinear.host.diskUsedBytes": 7}]`, "", 7, false},
		{"no results", `[]`, "prediction", 0, true},
		{"two results", `[{"prediction": 1}, {"prediction": 2}]`, "prediction", 0, true},
		{"field absent", `[{"other": 1}]`, "prediction", 0, true},
		{"null value", `[{"prediction": null}]`, "prediction", 0, true},
		{"ambiguous autodetect", `[{"a": 1, "b": 2}]`, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PredictionValue(decodeRecords(t, tt.results), tt.field)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingPrediction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateLayout(t *testing.T) {
	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.AmericanEnglish, "1/2/2006"},
		{language.BritishEnglish, "02/01/2006"},
		{language.MustParse("de-DE"), "2.1.2006"},
		{language.Japanese, "2006/1/2"},
		{language.MustParse("sw"), ISOLabelLayout},
	}
	for _, tt := range tests {
		if got := DateLayout(tt.tag); got != tt.want {
			t.Errorf("DateLayout(%s) = %q, expected %q", tt.tag, got, tt.want)
		}
	}
}

func TestParseAnchorPolicy(t *testing.T) {
	for in, want := range map[string]AnchorPolicy{
		"":              AnchorCarryForward,
		"carry-forward": AnchorCarryForward,
		"fail":          AnchorFail,
	} {
		got, err := ParseAnchorPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseAnchorPolicy(%q) = %q, %v; expected %q", in, got, err, want)
		}
	}
	if _, err := ParseAnchorPolicy("nearest"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestParseLocale(t *testing.T) {
	tag, err := ParseLocale("")
	require.NoError(t, err)
	assert.Equal(t, language.AmericanEnglish, tag)

	tag, err = ParseLocale("en-GB")
	require.NoError(t, err)
	assert.Equal(t, "02/01/2006", DateLayout(tag))

	_, err = ParseLocale("not a locale!")
	assert.Error(t, err)
}
