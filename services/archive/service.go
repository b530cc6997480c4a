package archive

import (
	"context"
	"fmt"
	"log"
	"time"

	"quiznight/auth"
	"quiznight/models"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	namespace      = "quiz-questions"
	embeddingModel = "text-embedding-3-small"
	dimension      = int32(1536)
	listPageSize   = uint32(100)
)

// vectorIndex is the part of a Pinecone index connection the archive uses.
type vectorIndex interface {
	UpsertVectors(ctx context.Context, in []*pinecone.Vector) (uint32, error)
	QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error)
	ListVectors(ctx context.Context, in *pinecone.ListVectorsRequest) (*pinecone.ListVectorsResponse, error)
	DeleteVectorsById(ctx context.Context, ids []string) error
}

// Service keeps every saved question in a vector index so new quizzes can
// steer away from questions that were already asked.
type Service struct {
	client    *pinecone.Client
	embedder  embeddings.Embedder
	indexName string
	connect   func(ctx context.Context) (vectorIndex, error)
}

func NewService(apiKey, openaiAPIKey, indexName string) (*Service, error) {
	log.Printf("[INFO] Initializing question archive")

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	llm, err := openai.New(
		openai.WithToken(openaiAPIKey),
		openai.WithEmbeddingModel(embeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	s := &Service{
		client:    pc,
		embedder:  embedder,
		indexName: indexName,
	}
	s.connect = s.indexConnection

	log.Printf("[INFO] Question archive initialized with index %s", indexName)
	return s, nil
}

func (s *Service) indexConnection(ctx context.Context) (vectorIndex, error) {
	idxDesc, err := s.client.DescribeIndex(ctx, s.indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	idxConn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      idxDesc.Host,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index connection: %w", err)
	}
	return idxConn, nil
}

// EnsureIndex creates the serverless index when it does not exist yet and
// waits until it is ready.
func (s *Service) EnsureIndex(ctx context.Context) error {
	indexes, err := s.client.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}

	for _, idx := range indexes {
		if idx.Name == s.indexName {
			log.Printf("[INFO] Index %s already exists", s.indexName)
			return nil
		}
	}

	log.Printf("[INFO] Creating Pinecone index: %s", s.indexName)
	dim := dimension
	deletionProtection := pinecone.DeletionProtectionDisabled
	metric := pinecone.Cosine

	_, err = s.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:               s.indexName,
		Dimension:          &dim,
		Metric:             &metric,
		Cloud:              pinecone.Aws,
		Region:             "us-east-1",
		DeletionProtection: &deletionProtection,
		Tags:               &pinecone.IndexTags{"project": "quiznight"},
	})
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	for {
		idx, err := s.client.DescribeIndex(ctx, s.indexName)
		if err != nil {
			return fmt.Errorf("failed to describe index: %w", err)
		}
		if idx.Status != nil && idx.Status.Ready {
			log.Printf("[INFO] Index %s is ready", s.indexName)
			return nil
		}
		log.Printf("[INFO] Waiting for index %s to be ready...", s.indexName)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Second):
		}
	}
}

// IndexQuiz embeds and stores every question of a saved quiz.
func (s *Service) IndexQuiz(ctx context.Context, tree *models.QuizTree) error {
	entries := entriesFor(tree)
	if len(entries) == 0 {
		return nil
	}

	log.Printf("[INFO] Archiving %d questions of quiz %s", len(entries), tree.ID)

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.embeddingText()
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed questions: %w", err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("embedder returned %d vectors for %d questions", len(vectors), len(entries))
	}

	batch := make([]*pinecone.Vector, 0, len(entries))
	for i, e := range entries {
		metadata, err := structpb.NewStruct(e.metadata())
		if err != nil {
			return fmt.Errorf("failed to create metadata for question %s: %w", e.QuestionID, err)
		}
		values := vectors[i]
		batch = append(batch, &pinecone.Vector{
			Id:       e.vectorID(),
			Values:   &values,
			Metadata: metadata,
		})
	}

	idx, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if _, err := idx.UpsertVectors(ctx, batch); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}

	log.Printf("[INFO] Archived quiz %s", tree.ID)
	return nil
}

// Similar returns the text of archived questions closest to topic, limited
// to the caller's own quizzes and the given category.
func (s *Service) Similar(ctx context.Context, topic string, category models.Category, limit int) ([]string, error) {
	query, err := s.embedder.EmbedQuery(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to embed topic: %w", err)
	}

	filter, err := structpb.NewStruct(similarityFilter(auth.OwnerID(ctx), category))
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata filter: %w", err)
	}

	idx, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	result, err := idx.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          query,
		TopK:            uint32(limit),
		MetadataFilter:  filter,
		IncludeValues:   false,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query vectors: %w", err)
	}

	questions := questionsFromMatches(result.Matches)
	log.Printf("[INFO] Found %d archived questions similar to %q", len(questions), topic)
	return questions, nil
}

// DeleteQuiz removes every archived question of a quiz.
func (s *Service) DeleteQuiz(ctx context.Context, quizID string) error {
	idx, err := s.connect(ctx)
	if err != nil {
		return err
	}

	prefix := quizPrefix(quizID)
	limit := listPageSize
	var token *string
	deleted := 0

	for {
		listResp, err := idx.ListVectors(ctx, &pinecone.ListVectorsRequest{
			Prefix:          &prefix,
			Limit:           &limit,
			PaginationToken: token,
		})
		if err != nil {
			return fmt.Errorf("failed to list vectors: %w", err)
		}

		ids := make([]string, 0, len(listResp.VectorIds))
		for _, id := range listResp.VectorIds {
			if id != nil {
				ids = append(ids, *id)
			}
		}
		if len(ids) > 0 {
			if err := idx.DeleteVectorsById(ctx, ids); err != nil {
				return fmt.Errorf("failed to delete vector batch: %w", err)
			}
			deleted += len(ids)
		}

		if listResp.NextPaginationToken == nil {
			break
		}
		token = listResp.NextPaginationToken
	}

	log.Printf("[INFO] Removed %d archived questions of quiz %s", deleted, quizID)
	return nil
}
