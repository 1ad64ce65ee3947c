package churn

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"churnpredict/ml"
)

// Prediction is the scored result of one request. It is never cached.
type Prediction struct {
	Input       Input         `json:"input"`
	Row         ml.AlignedRow `json:"features"`
	Label       int           `json:"label"`
	Probability float64       `json:"probability"`
}

// Predictor turns raw input into a schema-aligned row and scores it against a
// shared, read-only artifact. It holds no per-request state.
type Predictor struct {
	artifact *ml.Artifact
	logger   *zap.Logger
}

func NewPredictor(artifact *ml.Artifact, logger *zap.Logger) (*Predictor, error) {
	if artifact == nil || artifact.Model == nil || artifact.Schema == nil {
		return nil, eris.New("churn: predictor needs a loaded artifact")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{artifact: artifact, logger: logger}, nil
}

func (p *Predictor) Artifact() *ml.Artifact { return p.artifact }

// Build validates in and aligns its encoded row to the artifact's schema.
func (p *Predictor) Build(in Input) (ml.AlignedRow, error) {
	if err := in.Validate(); err != nil {
		return ml.AlignedRow{}, err
	}
	row := p.artifact.Schema.Align(Encode(in))
	if len(row.Filled) > 0 || len(row.Dropped) > 0 {
		p.logger.Debug("aligned row to feature schema",
			zap.Strings("filled", row.Filled),
			zap.Strings("dropped", row.Dropped),
		)
	}
	return row, nil
}

func (p *Predictor) Predict(in Input) (*Prediction, error) {
	row, err := p.Build(in)
	if err != nil {
		return nil, err
	}
	label, proba, err := p.artifact.Score(row)
	if err != nil {
		return nil, eris.Wrap(err, "churn: score row")
	}
	return &Prediction{
		Input:       in,
		Row:         row,
		Label:       label,
		Probability: proba,
	}, nil
}
