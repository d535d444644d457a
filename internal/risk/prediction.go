package risk

import (
	"encoding/json"
	"time"
)

// Entry is one predicted health risk inside a prediction document.
type Entry struct {
	Label          string   `json:"label"`
	Predicted      int      `json:"predicted"`
	Probability    *float64 `json:"probability"`
	ReasonFeatures []string `json:"reason_features,omitempty"`
	Advice         []string `json:"advice,omitempty"`
}

// Prediction is one model output document derived from the newest sensor
// state. The prediction service publishes one document per evaluation.
type Prediction struct {
	ID          string             `json:"id"`
	Predictions []Entry            `json:"predictions"`
	Features    map[string]float64 `json:"features,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// EncodePrediction encodes a prediction document to JSON.
func EncodePrediction(p *Prediction) ([]byte, error) {
	return json.Marshal(p)
}

// DecodePrediction decodes JSON to a prediction document.
func DecodePrediction(data []byte) (*Prediction, error) {
	var p Prediction
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
