package classifier

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var errEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words or over-frequent terms")

// Tokens are maximal runs of word characters, at least two long. Unicode
// letter and number classes keep non-Latin subjects tokenizable.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// vectorizer builds a tf-idf document matrix over lowercased word tokens.
// A term must appear in at least one document and in no more than
// maxDocFreq of all documents; the maxFeatures most frequent surviving
// terms form the vocabulary, kept in alphabetical order.
type vectorizer struct {
	maxFeatures int
	maxDocFreq  float64
}

func (v *vectorizer) fitTransform(docs []string) (*mat.Dense, []string, error) {
	counts := make([]map[string]int, len(docs))
	docFreq := make(map[string]int)
	totals := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, token := range tokenPattern.FindAllString(strings.ToLower(doc), -1) {
			if _, stop := englishStopWords[token]; stop {
				continue
			}
			counts[i][token]++
			totals[token]++
		}
		for term := range counts[i] {
			docFreq[term]++
		}
	}

	vocab := v.selectVocabulary(docFreq, totals, len(docs))
	if len(vocab) == 0 {
		return nil, nil, errEmptyVocabulary
	}

	index := make(map[string]int, len(vocab))
	for j, term := range vocab {
		index[term] = j
	}

	// Smoothed idf, then l2-normalized rows.
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for j, term := range vocab {
		idf[j] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	x := mat.NewDense(len(docs), len(vocab), nil)
	for i := range docs {
		row := x.RawRowView(i)
		for term, count := range counts[i] {
			if j, ok := index[term]; ok {
				row[j] = float64(count) * idf[j]
			}
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
	}

	return x, vocab, nil
}

func (v *vectorizer) selectVocabulary(docFreq, totals map[string]int, docCount int) []string {
	maxDF := v.maxDocFreq * float64(docCount)

	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if float64(df) <= maxDF {
			candidates = append(candidates, term)
		}
	}

	// Keep the most frequent terms when over the feature cap, then order the
	// vocabulary alphabetically.
	sort.Slice(candidates, func(a, b int) bool {
		if totals[candidates[a]] != totals[candidates[b]] {
			return totals[candidates[a]] > totals[candidates[b]]
		}
		return candidates[a] < candidates[b]
	})
	if len(candidates) > v.maxFeatures {
		candidates = candidates[:v.maxFeatures]
	}
	sort.Strings(candidates)

	return candidates
}
