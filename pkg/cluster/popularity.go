package cluster

import "github.com/umputun/topicscope/pkg/domain"

// Scorer computes topic popularity from membership statistics:
//
//	CoverageWeight*min(items*PerItem, Cap) + DiversityWeight*min(sources*PerSource, Cap) + VelocityWeight*Velocity
//
// Velocity is a fixed momentum value, no time decay is modeled.
type Scorer struct {
	CoverageWeight  float64
	DiversityWeight float64
	VelocityWeight  float64
	Velocity        float64
	PerItem         float64
	PerSource       float64
	Cap             float64
	Initial         float64 // score of a newly created topic
}

// DefaultScorer returns the scorer with the stock weights
func DefaultScorer() Scorer {
	return Scorer{
		CoverageWeight:  0.4,
		DiversityWeight: 0.2,
		VelocityWeight:  0.2,
		Velocity:        60,
		PerItem:         10,
		PerSource:       20,
		Cap:             100,
		Initial:         10,
	}
}

// Score returns the popularity score for the given statistics
func (s Scorer) Score(st domain.TopicStats) float64 {
	coverage := min(float64(st.Items)*s.PerItem, s.Cap)
	diversity := min(float64(st.Sources)*s.PerSource, s.Cap)
	return s.CoverageWeight*coverage + s.DiversityWeight*diversity + s.VelocityWeight*s.Velocity
}
