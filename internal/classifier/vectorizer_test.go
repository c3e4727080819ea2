package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestVectorizer(t *testing.T) {
	v := &vectorizer{maxFeatures: 100, maxDocFreq: 0.9}

	t.Run("should build alphabetical vocabulary without stop words", func(t *testing.T) {
		docs := []string{
			"Invoice payment due",
			"Team meeting agenda for the week",
		}

		x, vocab, err := v.fitTransform(docs)

		require.NoError(t, err)
		assert.Equal(t, []string{"agenda", "due", "invoice", "meeting", "payment", "team", "week"}, vocab)
		rows, cols := x.Dims()
		assert.Equal(t, 2, rows)
		assert.Equal(t, 7, cols)
	})

	t.Run("should l2 normalize rows", func(t *testing.T) {
		docs := []string{"invoice payment", "meeting notes"}

		x, _, err := v.fitTransform(docs)

		require.NoError(t, err)
		rows, _ := x.Dims()
		for i := 0; i < rows; i++ {
			assert.InDelta(t, 1.0, floats.Norm(x.RawRowView(i), 2), 1e-9)
		}
	})

	t.Run("should drop terms above max document frequency", func(t *testing.T) {
		docs := []string{
			"weekly report alpha",
			"weekly report beta",
			"weekly report gamma",
		}

		// "weekly" and "report" appear in all 3 documents, above the 90% cap.
		_, vocab, err := v.fitTransform(docs)

		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, vocab)
	})

	t.Run("should cap the feature count keeping the most frequent terms", func(t *testing.T) {
		small := &vectorizer{maxFeatures: 2, maxDocFreq: 0.9}
		docs := []string{
			"invoice invoice invoice meeting",
			"newsletter digest",
		}

		// "invoice" has the highest corpus frequency; the remaining slot goes
		// to the alphabetically first of the tied terms.
		_, vocab, err := small.fitTransform(docs)

		require.NoError(t, err)
		assert.Equal(t, []string{"digest", "invoice"}, vocab)
	})

	t.Run("should tokenize non-ASCII subjects", func(t *testing.T) {
		docs := []string{
			"Réunion d'équipe lundi",
			"Facture impayée",
		}

		_, vocab, err := v.fitTransform(docs)

		require.NoError(t, err)
		assert.Contains(t, vocab, "réunion")
		assert.Contains(t, vocab, "équipe")
		assert.Contains(t, vocab, "facture")
	})

	t.Run("should fail on empty vocabulary", func(t *testing.T) {
		_, _, err := v.fitTransform([]string{"", "  ", "the of and"})
		assert.ErrorIs(t, err, errEmptyVocabulary)
	})
}
