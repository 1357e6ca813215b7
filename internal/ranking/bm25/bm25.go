// Package bm25 implements Okapi BM25 scoring over a small in-memory corpus.
//
// An Index is cheap to build and immutable once built, so callers rebuild it
// per query from the current chunk set instead of keeping it in sync with
// storage.
package bm25

import "math"

// Default tuning parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

// Index holds term statistics for a tokenised corpus.
type Index struct {
	k1 float64
	b  float64

	termFreqs []map[string]int
	docLens   []int
	docFreq   map[string]int
	avgDocLen float64
}

// Option configures an Index.
type Option func(*Index)

// WithK1 sets the term frequency saturation parameter.
func WithK1(k1 float64) Option {
	return func(idx *Index) {
		if k1 >= 0 {
			idx.k1 = k1
		}
	}
}

// WithB sets the document length normalisation parameter, clamped to [0, 1].
func WithB(b float64) Option {
	return func(idx *Index) {
		idx.b = math.Max(0, math.Min(1, b))
	}
}

// New builds an index over corpus, one token slice per document.
// The corpus order defines the order of Scores.
func New(corpus [][]string, opts ...Option) *Index {
	idx := &Index{
		k1:        DefaultK1,
		b:         DefaultB,
		termFreqs: make([]map[string]int, len(corpus)),
		docLens:   make([]int, len(corpus)),
		docFreq:   make(map[string]int),
	}

	for _, opt := range opts {
		opt(idx)
	}

	total := 0
	for i, tokens := range corpus {
		freqs := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freqs[tok]++
		}
		for tok := range freqs {
			idx.docFreq[tok]++
		}
		idx.termFreqs[i] = freqs
		idx.docLens[i] = len(tokens)
		total += len(tokens)
	}

	if len(corpus) > 0 {
		idx.avgDocLen = float64(total) / float64(len(corpus))
	}

	return idx
}

// Len returns the number of documents in the index.
func (idx *Index) Len() int {
	return len(idx.docLens)
}

// AvgDocLen returns the mean document length in tokens.
func (idx *Index) AvgDocLen() float64 {
	return idx.avgDocLen
}

// IDF returns the inverse document frequency of term. It is strictly
// positive, so a matching term always raises a document's score.
func (idx *Index) IDF(term string) float64 {
	n := float64(len(idx.docLens))
	df := float64(idx.docFreq[term])
	return math.Log(1 + (n-df+0.5)/(df+0.5))
}

// Scores returns one score per document, in corpus order. Repeated query
// terms contribute once per occurrence.
func (idx *Index) Scores(query []string) []float64 {
	scores := make([]float64, len(idx.docLens))
	if len(scores) == 0 || len(query) == 0 {
		return scores
	}

	idf := make(map[string]float64, len(query))
	for _, term := range query {
		if _, ok := idf[term]; !ok {
			idf[term] = idx.IDF(term)
		}
	}

	for i, freqs := range idx.termFreqs {
		lenRatio := 0.0
		if idx.avgDocLen > 0 {
			lenRatio = float64(idx.docLens[i]) / idx.avgDocLen
		}
		norm := idx.k1 * (1 - idx.b + idx.b*lenRatio)

		var score float64
		for _, term := range query {
			tf := float64(freqs[term])
			if tf == 0 {
				continue
			}
			score += idf[term] * tf * (idx.k1 + 1) / (tf + norm)
		}
		scores[i] = score
	}

	return scores
}
