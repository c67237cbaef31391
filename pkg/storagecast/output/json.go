package output

import (
	"encoding/json"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// ToJSON serializes the projected point sequence.
func ToJSON(p *models.Projection, pretty bool) ([]byte, error) {
	return marshal(p.Points, pretty)
}

// ProjectionToJSON serializes the projection with its anchor, step and
// dropped points.
func ProjectionToJSON(p *models.Projection, pretty bool) ([]byte, error) {
	return marshal(p, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
