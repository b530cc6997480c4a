package main

import (
	"context"
	"errors"
	"testing"

	"quiznight/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuizSource struct {
	mock.Mock
}

func (m *MockQuizSource) ListQuizzes(ctx context.Context, ownerID string) ([]*models.Quiz, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

func (m *MockQuizSource) GetQuizTree(ctx context.Context, quizID string) (*models.QuizTree, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizTree), args.Error(1)
}

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) IndexQuiz(ctx context.Context, tree *models.QuizTree) error {
	return m.Called(ctx, tree).Error(0)
}

func TestBackfillCountsFailuresAndContinues(t *testing.T) {
	ctx := context.Background()
	source := new(MockQuizSource)
	indexer := new(MockIndexer)

	first := &models.QuizTree{Quiz: models.Quiz{ID: "q1"}}
	third := &models.QuizTree{Quiz: models.Quiz{ID: "q3"}}

	source.On("ListQuizzes", ctx, "local").Return([]*models.Quiz{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}}, nil)
	source.On("GetQuizTree", ctx, "q1").Return(first, nil)
	source.On("GetQuizTree", ctx, "q2").Return(nil, errors.New("connection reset"))
	source.On("GetQuizTree", ctx, "q3").Return(third, nil)
	indexer.On("IndexQuiz", ctx, first).Return(nil)
	indexer.On("IndexQuiz", ctx, third).Return(errors.New("pinecone down"))

	failed, err := backfill(ctx, source, indexer, "local")
	require.NoError(t, err)
	assert.Equal(t, 2, failed)
	source.AssertExpectations(t)
	indexer.AssertExpectations(t)
}

func TestBackfillAllIndexed(t *testing.T) {
	ctx := context.Background()
	source := new(MockQuizSource)
	indexer := new(MockIndexer)
	tree := &models.QuizTree{Quiz: models.Quiz{ID: "q1"}}

	source.On("ListQuizzes", ctx, "local").Return([]*models.Quiz{{ID: "q1"}}, nil)
	source.On("GetQuizTree", ctx, "q1").Return(tree, nil)
	indexer.On("IndexQuiz", ctx, tree).Return(nil)

	failed, err := backfill(ctx, source, indexer, "local")
	require.NoError(t, err)
	assert.Zero(t, failed)
}

func TestBackfillListFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockQuizSource)
	indexer := new(MockIndexer)
	source.On("ListQuizzes", ctx, "local").Return(nil, errors.New("db down"))

	_, err := backfill(ctx, source, indexer, "local")
	assert.Error(t, err)
	indexer.AssertNotCalled(t, "IndexQuiz", mock.Anything, mock.Anything)
}
