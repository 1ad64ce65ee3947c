package ml

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

// Artifact pairs a classifier with the schema its rows must follow. It is
// read-only once loaded and safe to share between requests.
type Artifact struct {
	Model      Classifier
	Schema     *FeatureSchema
	ModelPath  string
	SchemaPath string
	LoadedAt   time.Time
}

// Score runs label prediction and positive-class probability on one aligned row.
func (a *Artifact) Score(row AlignedRow) (int, float64, error) {
	if !a.Schema.Conforms(row) {
		return 0, 0, eris.New("ml: row does not match feature schema")
	}
	label, err := a.Model.Predict(row.Values)
	if err != nil {
		return 0, 0, eris.Wrap(err, "ml: predict")
	}
	proba, err := a.Model.PredictProba(row.Values)
	if err != nil {
		return 0, 0, eris.Wrap(err, "ml: predict proba")
	}
	if len(proba) <= PositiveClass {
		return 0, 0, eris.Errorf("ml: predict proba returned %d classes", len(proba))
	}
	return label, proba[PositiveClass], nil
}

// LoaderConfig names the files a Loader reads.
type LoaderConfig struct {
	ModelType  string
	ModelPath  string
	SchemaPath string
}

// Loader loads the artifact on the first call to Load and returns the same
// artifact, or the same error, on every later call. Files are never re-read.
type Loader struct {
	config   LoaderConfig
	once     sync.Once
	artifact *Artifact
	err      error
}

func NewLoader(config LoaderConfig) *Loader {
	return &Loader{config: config}
}

func (l *Loader) Load() (*Artifact, error) {
	l.once.Do(func() {
		l.artifact, l.err = LoadArtifact(l.config)
	})
	return l.artifact, l.err
}

func LoadArtifact(config LoaderConfig) (*Artifact, error) {
	if config.ModelPath == "" || config.SchemaPath == "" {
		return nil, eris.New("ml: model and schema paths are required")
	}
	model, err := LoadModel(config.ModelType, config.ModelPath)
	if err != nil {
		return nil, err
	}
	schema, err := LoadFeatureSchema(config.SchemaPath)
	if err != nil {
		return nil, err
	}
	if model.NumFeatures() != schema.Len() {
		return nil, eris.Errorf("ml: model expects %d features, schema has %d", model.NumFeatures(), schema.Len())
	}
	return &Artifact{
		Model:      model,
		Schema:     schema,
		ModelPath:  config.ModelPath,
		SchemaPath: config.SchemaPath,
		LoadedAt:   time.Now(),
	}, nil
}
