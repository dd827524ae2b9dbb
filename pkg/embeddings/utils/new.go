// Package embeddingutils is the embeddings utility package
package embeddingutils

import (
	"fmt"

	"github.com/premiselab/premise/pkg/embeddings"
	"github.com/premiselab/premise/pkg/embeddings/ollama"
)

type NewPredictorOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
}

func NewPredictor(o *NewPredictorOpts) (embeddings.Predictor, error) {
	switch o.ProviderType {
	case "ollama":
		return ollama.NewPredictor(ollama.Config{
			BaseURL: o.TargetURL,
			Model:   o.Model,
		})
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", o.ProviderType)
	}
}
