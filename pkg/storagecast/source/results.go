// Package source reads the three forecast result sets from saved query
// responses and spreadsheets.
package source

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nvhoanganh/newrelic-custom-viz-storageprediction/pkg/storagecast/models"
)

// Result set names.
const (
	SetTotal      = "total"
	SetUsed       = "used"
	SetPrediction = "prediction"
)

// Results holds the raw result sets feeding a projection.
type Results struct {
	Total      []models.Record `json:"total"`
	Used       []models.Record `json:"used"`
	Prediction []models.Record `json:"prediction"`
}

// Response is the NerdGraph response shape for the three aliased NRQL queries.
type Response struct {
	Data struct {
		Actor struct {
			Account struct {
				Total      *ResultSet `json:"total"`
				Used       *ResultSet `json:"used"`
				Prediction *ResultSet `json:"prediction"`
			} `json:"account"`
		} `json:"actor"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// ResultSet is one aliased nrql field of the response.
type ResultSet struct {
	Results []models.Record `json:"results"`
}

// GraphQLError is an entry of the response errors list.
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

func (e GraphQLError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (path %v)", e.Message, e.Path)
}

// Results returns the three result sets, failing when one is absent.
func (r *Response) Results() (*Results, error) {
	account := r.Data.Actor.Account
	sets := []struct {
		name string
		set  *ResultSet
	}{
		{SetTotal, account.Total},
		{SetUsed, account.Used},
		{SetPrediction, account.Prediction},
	}
	for _, s := range sets {
		if s.set == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingResultSet, s.name)
		}
	}
	return &Results{
		Total:      account.Total.Results,
		Used:       account.Used.Results,
		Prediction: account.Prediction.Results,
	}, nil
}

// ReadResponse decodes a saved NerdGraph response.
func ReadResponse(r io.Reader) (*Results, error) {
	var resp Response
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, resp.Errors[0]
	}
	return resp.Results()
}

// WriteResponse encodes results in the NerdGraph response shape read by
// ReadResponse.
func WriteResponse(w io.Writer, res *Results) error {
	var resp Response
	resp.Data.Actor.Account.Total = &ResultSet{Results: nonNil(res.Total)}
	resp.Data.Actor.Account.Used = &ResultSet{Results: nonNil(res.Used)}
	resp.Data.Actor.Account.Prediction = &ResultSet{Results: nonNil(res.Prediction)}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func nonNil(records []models.Record) []models.Record {
	if records == nil {
		return []models.Record{}
	}
	return records
}
