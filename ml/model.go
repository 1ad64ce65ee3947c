package ml

// Classifier is a fitted binary classifier scoring one row at a time. Rows are
// positional and must follow the feature order the model was trained on.
type Classifier interface {
	Name() string
	NumFeatures() int
	Predict(features []float64) (int, error)
	PredictProba(features []float64) ([]float64, error)
}

const (
	NegativeClass = 0
	PositiveClass = 1
)

var binaryClasses = []int{NegativeClass, PositiveClass}
