package archive

import (
	"context"
	"testing"

	"quiznight/auth"
	"quiznight/models"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeEmbedder struct {
	texts []string
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	f.texts = append(f.texts, texts...)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.texts = append(f.texts, text)
	return []float32{0.5, 0.5}, nil
}

type fakeIndex struct {
	upserted []*pinecone.Vector
	query    *pinecone.QueryByVectorValuesRequest
	matches  []*pinecone.ScoredVector
	pages    []*pinecone.ListVectorsResponse
	listed   []*pinecone.ListVectorsRequest
	deleted  [][]string
}

func (f *fakeIndex) UpsertVectors(ctx context.Context, in []*pinecone.Vector) (uint32, error) {
	f.upserted = append(f.upserted, in...)
	return uint32(len(in)), nil
}

func (f *fakeIndex) QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error) {
	f.query = in
	return &pinecone.QueryVectorsResponse{Matches: f.matches}, nil
}

func (f *fakeIndex) ListVectors(ctx context.Context, in *pinecone.ListVectorsRequest) (*pinecone.ListVectorsResponse, error) {
	f.listed = append(f.listed, in)
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func (f *fakeIndex) DeleteVectorsById(ctx context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids)
	return nil
}

func newTestService(idx *fakeIndex, embedder *fakeEmbedder) *Service {
	return &Service{
		embedder:  embedder,
		indexName: "test",
		connect:   func(ctx context.Context) (vectorIndex, error) { return idx, nil },
	}
}

func sampleTree() *models.QuizTree {
	return &models.QuizTree{
		Quiz: models.Quiz{ID: "quiz-1", OwnerID: "owner-1", Name: "Friday"},
		Rounds: []models.RoundTree{
			{
				Round: models.Round{ID: "r1", RoundNumber: 1, Theme: "Capitals"},
				Questions: []models.Question{
					{ID: "q1", QuestionNumber: 1, Category: models.CategoryGeography, QuestionText: "Capital of Peru?", AnswerText: "Lima"},
					{ID: "q2", QuestionNumber: 2, Category: models.CategoryGeography, QuestionText: "Capital of Chile?", AnswerText: "Santiago"},
				},
			},
			{
				Round:     models.Round{ID: "r2", RoundNumber: 2, Theme: "Empty"},
				Questions: []models.Question{},
			},
		},
	}
}

func TestIndexQuizUpsertsOneVectorPerQuestion(t *testing.T) {
	idx := &fakeIndex{}
	embedder := &fakeEmbedder{}

	require.NoError(t, newTestService(idx, embedder).IndexQuiz(context.Background(), sampleTree()))

	require.Len(t, idx.upserted, 2)
	assert.Equal(t, "quiz-1#q1", idx.upserted[0].Id)
	assert.Equal(t, "quiz-1#q2", idx.upserted[1].Id)

	metadata := idx.upserted[1].Metadata.AsMap()
	assert.Equal(t, "owner-1", metadata["user_id"])
	assert.Equal(t, "geography", metadata["category"])
	assert.Equal(t, "Capital of Chile?", metadata["question"])
	assert.Equal(t, float64(1), metadata["round"])

	assert.Contains(t, embedder.texts[0], "Question: Capital of Peru?")
}

func TestIndexQuizWithoutQuestionsDoesNothing(t *testing.T) {
	idx := &fakeIndex{}
	tree := &models.QuizTree{Quiz: models.Quiz{ID: "empty"}}

	require.NoError(t, newTestService(idx, &fakeEmbedder{}).IndexQuiz(context.Background(), tree))
	assert.Empty(t, idx.upserted)
}

func TestSimilarFiltersByOwnerAndCategory(t *testing.T) {
	withAnswer, _ := structpb.NewStruct(map[string]any{"question": "Capital of Peru?", "answer": "Lima"})
	bare, _ := structpb.NewStruct(map[string]any{"question": "Longest river?"})
	idx := &fakeIndex{matches: []*pinecone.ScoredVector{
		{Vector: &pinecone.Vector{Id: "a", Metadata: withAnswer}},
		{Vector: &pinecone.Vector{Id: "b"}},
		{Vector: &pinecone.Vector{Id: "c", Metadata: bare}},
	}}

	ctx := auth.WithOwner(context.Background(), "owner-1")
	questions, err := newTestService(idx, &fakeEmbedder{}).Similar(ctx, "South America", models.CategoryGeography, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"Capital of Peru? (answer: Lima)", "Longest river?"}, questions)
	assert.Equal(t, uint32(5), idx.query.TopK)
	assert.True(t, idx.query.IncludeMetadata)

	filter := idx.query.MetadataFilter.AsMap()
	assert.Equal(t, map[string]any{"$eq": "owner-1"}, filter["user_id"])
	assert.Equal(t, map[string]any{"$eq": "geography"}, filter["category"])
}

func TestDeleteQuizWalksAllPages(t *testing.T) {
	next := "page-2"
	id := func(s string) *string { return &s }
	idx := &fakeIndex{pages: []*pinecone.ListVectorsResponse{
		{VectorIds: []*string{id("quiz-1#q1"), id("quiz-1#q2")}, NextPaginationToken: &next},
		{VectorIds: []*string{id("quiz-1#q3")}},
	}}

	require.NoError(t, newTestService(idx, &fakeEmbedder{}).DeleteQuiz(context.Background(), "quiz-1"))

	assert.Equal(t, [][]string{{"quiz-1#q1", "quiz-1#q2"}, {"quiz-1#q3"}}, idx.deleted)
	require.Len(t, idx.listed, 2)
	assert.Equal(t, "quiz-1#", *idx.listed[0].Prefix)
	assert.Nil(t, idx.listed[0].PaginationToken)
	assert.Equal(t, "page-2", *idx.listed[1].PaginationToken)
}

func TestSimilarityFilterWithoutOwner(t *testing.T) {
	filter := similarityFilter("", models.CategoryMusic)
	assert.NotContains(t, filter, "user_id")
	assert.Contains(t, filter, "category")
}
