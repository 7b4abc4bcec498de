package similarity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ledgermind/ledgermind/internal/config"
)

// placeholderToken stands in for descriptions that clean down to nothing,
// keeping their vectors non-degenerate.
const placeholderToken = "empty"

// SemanticMatrix computes the pairwise TF-IDF cosine similarity matrix for
// the given descriptions. The result is always symmetric with diagonal 1.0.
// It never fails: when vectorization is impossible the matrix degrades to
// all-ones of the same size.
func (e *Engine) SemanticMatrix(descriptions []string) *mat.SymDense {
	n := len(descriptions)
	if n == 0 {
		return &mat.SymDense{}
	}
	if n == 1 {
		return mat.NewSymDense(1, []float64{1.0})
	}

	clean := make([]string, n)
	identical := true
	for i, desc := range descriptions {
		c := CleanDescription(desc)
		if c == "" {
			c = placeholderToken
		}
		clean[i] = c
		if c != clean[0] {
			identical = false
		}
	}
	if identical {
		return onesMatrix(n)
	}

	vectors, err := newVectorizer(e.tfidf).fitTransform(clean)
	if err != nil {
		return onesMatrix(n)
	}

	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			m.SetSym(i, j, cosine(vectors[i], vectors[j]))
		}
	}
	for i := 0; i < n; i++ {
		// Self-similarity invariant
		if m.At(i, i) == 0 {
			m.SetSym(i, i, 1.0)
		}
	}

	return m
}

func onesMatrix(n int) *mat.SymDense {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = 1.0
	}
	return mat.NewSymDense(n, data)
}

func cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// vectorizer builds l2-normalized TF-IDF document vectors with sklearn-style
// document-frequency pruning and word n-grams.
type vectorizer struct {
	maxFeatures int
	minDocFreq  int
	maxDocFreq  float64
	ngramMin    int
	ngramMax    int
}

func newVectorizer(cfg config.TFIDF) *vectorizer {
	return &vectorizer{
		maxFeatures: cfg.MaxFeatures,
		minDocFreq:  cfg.MinDocFreq,
		maxDocFreq:  cfg.MaxDocFreq,
		ngramMin:    cfg.NgramMin,
		ngramMax:    cfg.NgramMax,
	}
}

// fitTransform fits a vocabulary over the documents and returns one TF-IDF
// vector per document. It fails when document-frequency pruning leaves an
// empty vocabulary.
func (v *vectorizer) fitTransform(docs []string) ([][]float64, error) {
	n := len(docs)

	counts := make([]map[string]int, n)
	docFreq := make(map[string]int)
	totalFreq := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range v.terms(doc) {
			counts[i][term]++
			totalFreq[term]++
		}
		for term := range counts[i] {
			docFreq[term]++
		}
	}

	var vocab []string
	for term, df := range docFreq {
		if df < v.minDocFreq {
			continue
		}
		if float64(df)/float64(n) > v.maxDocFreq {
			continue
		}
		vocab = append(vocab, term)
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("empty vocabulary after document-frequency pruning")
	}

	// Keep the most frequent terms when over the feature cap
	sort.Slice(vocab, func(i, j int) bool {
		if totalFreq[vocab[i]] != totalFreq[vocab[j]] {
			return totalFreq[vocab[i]] > totalFreq[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if v.maxFeatures > 0 && len(vocab) > v.maxFeatures {
		vocab = vocab[:v.maxFeatures]
	}

	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	vectors := make([][]float64, n)
	for d := range docs {
		row := make([]float64, len(vocab))
		for i, term := range vocab {
			row[i] = float64(counts[d][term]) * idf[i]
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
		vectors[d] = row
	}

	return vectors, nil
}

// terms produces word n-grams over the configured range.
func (v *vectorizer) terms(doc string) []string {
	words := strings.Fields(doc)
	var terms []string
	for size := v.ngramMin; size <= v.ngramMax; size++ {
		if size < 1 || size > len(words) {
			continue
		}
		for i := 0; i+size <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+size], " "))
		}
	}
	return terms
}
