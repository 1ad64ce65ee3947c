package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rotisserie/eris"
)

// FeatureSchema is the ordered column list a model was trained on.
type FeatureSchema struct {
	columns []string
	index   map[string]int
}

// Row is an unordered set of named feature values.
type Row map[string]float64

// AlignedRow is a row projected onto a schema: Values[i] belongs to Columns[i].
type AlignedRow struct {
	Columns []string  `json:"columns"`
	Values  []float64 `json:"values"`
	// Filled lists schema columns absent from the source row and set to 0.
	Filled []string `json:"filled,omitempty"`
	// Dropped lists source columns the schema does not know.
	Dropped []string `json:"dropped,omitempty"`
}

func NewFeatureSchema(columns []string) (*FeatureSchema, error) {
	if len(columns) == 0 {
		return nil, errors.New("schema has no columns")
	}
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if prev, ok := index[col]; ok {
			return nil, fmt.Errorf("column %q repeated at %d and %d", col, prev, i)
		}
		index[col] = i
	}
	return &FeatureSchema{columns: append([]string(nil), columns...), index: index}, nil
}

// LoadFeatureSchema reads a JSON array of column names.
func LoadFeatureSchema(path string) (*FeatureSchema, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ml: read schema %s", path)
	}
	var columns []string
	if err := json.Unmarshal(payload, &columns); err != nil {
		return nil, eris.Wrapf(err, "ml: decode schema %s", path)
	}
	schema, err := NewFeatureSchema(columns)
	if err != nil {
		return nil, eris.Wrapf(err, "ml: invalid schema %s", path)
	}
	return schema, nil
}

func (s *FeatureSchema) Columns() []string {
	return append([]string(nil), s.columns...)
}

func (s *FeatureSchema) Len() int { return len(s.columns) }

func (s *FeatureSchema) Has(column string) bool {
	_, ok := s.index[column]
	return ok
}

// Align fills schema columns missing from row with 0, drops columns the
// schema does not name and orders the values by the schema.
func (s *FeatureSchema) Align(row Row) AlignedRow {
	aligned := AlignedRow{
		Columns: s.Columns(),
		Values:  make([]float64, len(s.columns)),
	}
	for i, col := range s.columns {
		v, ok := row[col]
		if !ok {
			aligned.Filled = append(aligned.Filled, col)
			continue
		}
		aligned.Values[i] = v
	}
	for col := range row {
		if !s.Has(col) {
			aligned.Dropped = append(aligned.Dropped, col)
		}
	}
	slices.Sort(aligned.Dropped)
	return aligned
}

// Conforms reports whether row carries exactly the schema's columns in order.
func (s *FeatureSchema) Conforms(row AlignedRow) bool {
	if len(row.Columns) != len(s.columns) || len(row.Values) != len(s.columns) {
		return false
	}
	for i, col := range s.columns {
		if row.Columns[i] != col {
			return false
		}
	}
	return true
}
