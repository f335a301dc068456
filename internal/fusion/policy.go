package fusion

import "admissions/internal/config"

// Policy configures an Engine.
type Policy struct {
	SimilarityThreshold float64
}

// PolicyFromConfig derives a Policy from the fusion config section.
func PolicyFromConfig(f config.Fusion) Policy {
	return Policy{SimilarityThreshold: f.SimilarityThreshold}
}

// DefaultPolicy returns the repository defaults.
func DefaultPolicy() Policy {
	return PolicyFromConfig(config.Default().Fusion)
}

func (p Policy) normalized() Policy {
	if p.SimilarityThreshold <= 0 || p.SimilarityThreshold > 1 {
		p.SimilarityThreshold = DefaultPolicy().SimilarityThreshold
	}
	return p
}
