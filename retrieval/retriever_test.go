package retrieval

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/asha/ai/mock"
	"github.com/poiesic/asha/core"
	"github.com/poiesic/asha/corpus"
	"github.com/poiesic/asha/index"
	"github.com/poiesic/asha/kb"
	"github.com/poiesic/asha/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 16

type fixture struct {
	kb       *core.KnowledgeBase
	corpus   core.Corpus
	index    *index.Index
	embedder *mock.MockEmbedder
}

// newFixture builds the default dataset with deterministic vectors. Queries
// listed in aliases embed exactly like the aliased corpus unit.
func newFixture(t *testing.T, aliases map[string]int) *fixture {
	t.Helper()
	data := kb.Default()
	units, err := corpus.Build(data)
	require.NoError(t, err)

	embed := func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			if unit, ok := aliases[text]; ok {
				text = units[unit].Text
			}
			out[i] = mock.GenerateDeterministicVector(text, testDim)
		}
		return out, nil
	}

	matrix, err := embed(context.Background(), units.Texts())
	require.NoError(t, err)
	ix, err := index.Build(matrix)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedderWithDimension(testDim)
	embedder.EmbedTextsFunc = embed

	return &fixture{kb: data, corpus: units, index: ix, embedder: embedder}
}

func TestNewRetriever(t *testing.T) {
	f := newFixture(t, nil)

	t.Run("valid configuration", func(t *testing.T) {
		r, err := NewRetriever(f.corpus, f.kb, f.index, f.embedder)
		require.NoError(t, err)
		assert.Equal(t, DefaultTopK, r.TopK())
	})

	t.Run("with options", func(t *testing.T) {
		r, err := NewRetriever(f.corpus, f.kb, f.index, f.embedder,
			WithLogger(slog.Default()),
			WithTopK(5),
			WithMatcher(matcher.Default()),
		)
		require.NoError(t, err)
		assert.Equal(t, 5, r.TopK())
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		_, err := NewRetriever(f.corpus, f.kb, f.index, f.embedder, WithLogger(nil))
		require.NoError(t, err)
	})

	t.Run("invalid top k", func(t *testing.T) {
		_, err := NewRetriever(f.corpus, f.kb, f.index, f.embedder, WithTopK(0))
		assert.ErrorIs(t, err, ErrInvalidTopK)
	})

	t.Run("missing collaborators", func(t *testing.T) {
		_, err := NewRetriever(nil, f.kb, f.index, f.embedder)
		assert.Equal(t, ErrCorpusRequired, err)
		_, err = NewRetriever(f.corpus, nil, f.index, f.embedder)
		assert.Equal(t, ErrKnowledgeBaseRequired, err)
		_, err = NewRetriever(f.corpus, f.kb, nil, f.embedder)
		assert.Equal(t, ErrIndexRequired, err)
		_, err = NewRetriever(f.corpus, f.kb, f.index, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("index does not match corpus", func(t *testing.T) {
		_, err := NewRetriever(f.corpus[:3], f.kb, f.index, f.embedder)
		assert.ErrorIs(t, err, ErrCorpusIndexMismatch)
	})
}

func TestRetrieve_DirectAnswer(t *testing.T) {
	f := newFixture(t, nil)
	r, err := NewRetriever(f.corpus, f.kb, f.index, f.embedder)
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(), "How do I update my profile?")
	require.NoError(t, err)
	assert.True(t, result.IsDirect())
	assert.Equal(t, matcher.ProfileAnswer, result.Direct)
	assert.Empty(t, result.Hits)
	assert.True(t, result.Grouping.Empty())
	assert.Zero(t, f.embedder.CallCount(), "direct answers must not embed")
}

func TestRetrieve_DirectAnswerSkipsUnbuiltIndex(t *testing.T) {
	f := newFixture(t, nil)
	var unbuilt *index.Index
	r, err := NewRetriever(f.corpus, f.kb, unbuilt, f.embedder)
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(), "I want to sign up")
	require.NoError(t, err)
	assert.Equal(t, matcher.SignUpAnswer, result.Direct)
}

func TestRetrieve_Grouping(t *testing.T) {
	infoUnit := len(kb.Default().Jobs) + len(kb.Default().Events) + len(kb.Default().Mentorships) + len(kb.Default().FAQs)
	f := newFixture(t, map[string]int{
		"Tell me about JobsForHer":      infoUnit,
		"Are there any upcoming events?": 5,
	})
	r, err := NewRetriever(f.corpus, f.kb, f.index, f.embedder)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("info query includes the organization", func(t *testing.T) {
		result, err := r.Retrieve(ctx, "Tell me about JobsForHer")
		require.NoError(t, err)
		assert.False(t, result.IsDirect())
		require.Len(t, result.Hits, 3)
		assert.Equal(t, infoUnit, result.Hits[0].UnitIndex)
		assert.Zero(t, result.Hits[0].Distance)
		assert.Same(t, &f.kb.Info, result.Grouping.Info)
		assert.Equal(t, core.UnitRef{Kind: core.KindInfo, Index: 0}, result.Refs[0])
		assert.Equal(t, 1, f.embedder.CallCount())
		assert.Equal(t, 1, f.embedder.TextCount())
	})

	t.Run("grouping invariant", func(t *testing.T) {
		result, err := r.Retrieve(ctx, "Are there any upcoming events?")
		require.NoError(t, err)
		require.Len(t, result.Hits, 3)
		require.Len(t, result.Refs, 3)
		assert.Same(t, &f.kb.Events[1], result.Grouping.Events[0])
		assert.Equal(t, 3, result.Grouping.Len())

		// Every grouped record came from a hit, and every hit is grouped
		counts := map[core.Kind]int{}
		for i, hit := range result.Hits {
			assert.Equal(t, f.corpus[hit.UnitIndex].Ref, result.Refs[i])
			counts[result.Refs[i].Kind]++
		}
		assert.Equal(t, counts[core.KindJob], len(result.Grouping.Jobs))
		assert.Equal(t, counts[core.KindEvent], len(result.Grouping.Events))
		assert.Equal(t, counts[core.KindMentorship], len(result.Grouping.Mentorships))
		assert.Equal(t, counts[core.KindFAQ], len(result.Grouping.FAQs))
		assert.Equal(t, counts[core.KindInfo] == 1, result.Grouping.Info != nil)
	})
}

func TestRetrieve_SmallCorpus(t *testing.T) {
	data := &core.KnowledgeBase{
		FAQs: []core.FAQ{{Question: "Is it free?", Answer: "Yes."}},
		Info: core.OrgInfo{Text: "A foundation."},
	}
	units, err := corpus.Build(data)
	require.NoError(t, err)
	require.Len(t, units, 2)

	embedder := mock.NewMockEmbedderWithDimension(testDim)
	matrix, err := embedder.EmbedTexts(context.Background(), units.Texts())
	require.NoError(t, err)
	ix, err := index.Build(matrix)
	require.NoError(t, err)

	r, err := NewRetriever(units, data, ix, embedder)
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(), "what does it cost")
	require.NoError(t, err)
	assert.Len(t, result.Hits, 2)
	assert.Len(t, result.Grouping.FAQs, 1)
	assert.NotNil(t, result.Grouping.Info)
}

func TestRetrieve_GroupingKeepsRetrievalOrder(t *testing.T) {
	data := &core.KnowledgeBase{
		Jobs: []core.Job{
			{Title: "Engineer", Company: "A", Location: "Remote", Description: "Builds."},
			{Title: "Analyst", Company: "B", Location: "Pune", Description: "Reads."},
			{Title: "Designer", Company: "C", Location: "Delhi", Description: "Draws."},
		},
		Info: core.OrgInfo{Text: "A foundation."},
	}
	units, err := corpus.Build(data)
	require.NoError(t, err)
	require.Len(t, units, 4)

	// Job#2 is closest to the query, then Job#0, then Job#1.
	ix, err := index.Build([][]float32{
		{1, 0},
		{10, 10},
		{0, 0},
		{20, 20},
	})
	require.NoError(t, err)

	embedder := mock.NewMockEmbedderWithDimension(2)
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			out[i] = []float32{0, 0}
		}
		return out, nil
	}

	r, err := NewRetriever(units, data, ix, embedder)
	require.NoError(t, err)

	result, err := r.Retrieve(context.Background(), "design roles")
	require.NoError(t, err)
	require.Len(t, result.Hits, 3)
	require.Len(t, result.Grouping.Jobs, 3)
	assert.Same(t, &data.Jobs[2], result.Grouping.Jobs[0])
	assert.Same(t, &data.Jobs[0], result.Grouping.Jobs[1])
	assert.Same(t, &data.Jobs[1], result.Grouping.Jobs[2])
	assert.Nil(t, result.Grouping.Info)
}

func TestRetrieve_EmbeddingFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		fn   func(ctx context.Context, texts []string) ([][]float32, error)
	}{
		{"transport error", func(context.Context, []string) ([][]float32, error) {
			return nil, errors.New("connection refused")
		}},
		{"wrong batch length", func(context.Context, []string) ([][]float32, error) {
			return [][]float32{}, nil
		}},
		{"empty vector", func(context.Context, []string) ([][]float32, error) {
			return [][]float32{{}}, nil
		}},
		{"wrong dimension", func(context.Context, []string) ([][]float32, error) {
			return [][]float32{make([]float32, testDim+1)}, nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.embedder.EmbedTextsFunc = tt.fn
			r, err := NewRetriever(f.corpus, f.kb, f.index, f.embedder)
			require.NoError(t, err)

			result, err := r.Retrieve(ctx, "remote jobs")
			assert.Nil(t, result)
			assert.ErrorIs(t, err, core.ErrEmbeddingService)
		})
	}
}

func TestRetrieve_UnbuiltIndex(t *testing.T) {
	f := newFixture(t, nil)
	r, err := NewRetriever(f.corpus, f.kb, &index.Index{}, f.embedder)
	require.NoError(t, err)

	_, err = r.Retrieve(context.Background(), "remote jobs")
	assert.ErrorIs(t, err, core.ErrIndexNotBuilt)
}

type recordingMonitor struct {
	noopMonitor
	steps []string
}

func (m *recordingMonitor) Start(string)                   { m.steps = append(m.steps, "start") }
func (m *recordingMonitor) DirectAnswer(string)            { m.steps = append(m.steps, "direct") }
func (m *recordingMonitor) AfterEmbedding([]float32)       { m.steps = append(m.steps, "embed") }
func (m *recordingMonitor) AfterSearch([]core.Hit)         { m.steps = append(m.steps, "search") }
func (m *recordingMonitor) UnitHit(core.Hit, core.UnitRef) { m.steps = append(m.steps, "hit") }
func (m *recordingMonitor) Finish(*Result)                 { m.steps = append(m.steps, "finish") }

func TestRetrieveWithMonitor(t *testing.T) {
	f := newFixture(t, nil)
	r, err := NewRetriever(f.corpus, f.kb, f.index, f.embedder, WithTopK(2))
	require.NoError(t, err)

	m := &recordingMonitor{}
	_, err = r.RetrieveWithMonitor(context.Background(), "remote jobs", m)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "embed", "search", "hit", "hit", "finish"}, m.steps)

	m = &recordingMonitor{}
	_, err = r.RetrieveWithMonitor(context.Background(), "edit profile", m)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "direct", "finish"}, m.steps)

	// LogMonitor must tolerate a nil logger
	_, err = r.RetrieveWithMonitor(context.Background(), "remote jobs", &LogMonitor{})
	require.NoError(t, err)
}
