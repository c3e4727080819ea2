package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xaenox/inbox-triage/internal/models"
	"go.uber.org/zap"
)

const labelTerms = 3

// KMeansClassifier groups records by subject-line similarity: subjects are
// tf-idf vectorized, clustered with seeded k-means, and each cluster is
// labeled with its centroid's top terms.
type KMeansClassifier struct {
	clusters    int
	maxFeatures int
	maxDocFreq  float64
	seed        int64
	logger      *zap.Logger
}

func NewKMeansClassifier(clusters, maxFeatures int, maxDocFreq float64, seed int64, logger *zap.Logger) *KMeansClassifier {
	return &KMeansClassifier{
		clusters:    clusters,
		maxFeatures: maxFeatures,
		maxDocFreq:  maxDocFreq,
		seed:        seed,
		logger:      logger,
	}
}

func (c *KMeansClassifier) Categorize(records []*models.EmailRecord) []*models.EmailRecord {
	if len(records) == 0 {
		return records
	}

	// One document per record, from the subject only.
	docs := make([]string, len(records))
	for i, record := range records {
		docs[i] = record.Subject
	}

	labels, err := c.clusterLabels(docs, c.effectiveClusters(len(docs)))
	if err != nil {
		c.logger.Error("Error in categorization, falling back to a single label",
			zap.Error(err),
			zap.Int("records", len(records)))
		return assignFallback(records)
	}

	for i, record := range records {
		record.Category = labels[i]
	}
	return records
}

// effectiveClusters shrinks the cluster count when there are fewer
// documents than requested clusters.
func (c *KMeansClassifier) effectiveClusters(docCount int) int {
	if docCount < c.clusters {
		return max(2, docCount/2)
	}
	return c.clusters
}

func (c *KMeansClassifier) clusterLabels(docs []string, k int) ([]string, error) {
	v := &vectorizer{maxFeatures: c.maxFeatures, maxDocFreq: c.maxDocFreq}
	x, vocab, err := v.fitTransform(docs)
	if err != nil {
		return nil, err
	}

	assignments, centers, err := kmeans(x, k, c.seed)
	if err != nil {
		return nil, err
	}

	names := make([]string, k)
	for cluster := 0; cluster < k; cluster++ {
		top := topTerms(centers.RawRowView(cluster), vocab, labelTerms)
		if len(top) == 0 {
			names[cluster] = fmt.Sprintf("Category %d", cluster+1)
		} else {
			names[cluster] = fmt.Sprintf("Category %d: %s", cluster+1, strings.Join(top, ", "))
		}
	}

	labels := make([]string, len(docs))
	for i, cluster := range assignments {
		labels[i] = names[cluster]
	}
	return labels, nil
}

// topTerms returns the highest-weighted vocabulary terms of a centroid,
// ties broken by feature index order; zero-weight terms never qualify.
func topTerms(centroid []float64, vocab []string, n int) []string {
	indices := make([]int, 0, len(centroid))
	for j, weight := range centroid {
		if weight > 0 {
			indices = append(indices, j)
		}
	}

	sort.SliceStable(indices, func(a, b int) bool {
		if centroid[indices[a]] != centroid[indices[b]] {
			return centroid[indices[a]] > centroid[indices[b]]
		}
		return indices[a] < indices[b]
	})
	if len(indices) > n {
		indices = indices[:n]
	}

	terms := make([]string, len(indices))
	for i, j := range indices {
		terms[i] = vocab[j]
	}
	return terms
}
