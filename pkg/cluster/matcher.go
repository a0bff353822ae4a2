package cluster

import "math"

// Candidate is a topic eligible for matching
type Candidate struct {
	TopicID   int64
	Embedding []float32
}

// Match is the result of comparing one item against a candidate list.
// Similarity and Index describe the best candidate even when it didn't clear the threshold.
type Match struct {
	Matched    bool
	Index      int // position of the best candidate, -1 if nothing was compared
	TopicID    int64
	Similarity float64
	Compared   int
}

// Matcher picks the single most similar candidate that clears the threshold
type Matcher struct {
	Threshold     float64
	MaxCandidates int // 0 means no cap
}

// Best returns the candidate with the highest cosine similarity to vec.
// Candidates without an embedding are skipped, ties keep the earliest candidate,
// and at most MaxCandidates candidates are compared.
func (m Matcher) Best(vec []float32, cands []Candidate) Match {
	best := Match{Index: -1}
	bestSim := math.Inf(-1)

	for i, c := range cands {
		if m.MaxCandidates > 0 && best.Compared >= m.MaxCandidates {
			break
		}
		if len(c.Embedding) == 0 {
			continue
		}
		best.Compared++
		sim := CosineSimilarity(vec, c.Embedding)
		if sim > bestSim {
			bestSim = sim
			best.Index, best.TopicID, best.Similarity = i, c.TopicID, sim
		}
	}

	best.Matched = best.Index >= 0 && best.Similarity >= m.Threshold
	return best
}

// CosineSimilarity returns dot(a,b)/(|a|*|b|). Empty, mismatched or zero-norm vectors give 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
