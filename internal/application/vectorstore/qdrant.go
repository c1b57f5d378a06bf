// Package vectorstore implements the Vector Store Adapter (spec.md §4,
// §6) over Qdrant: upsert/query/delete of per-user dense vectors with
// metadata filters, the point-id-keyed collection shape the teacher's
// qdrant repository (structs.go) also used for chunk embeddings.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/qdrant/go-client/qdrant"

	"github.com/resonate/core/internal/types"
	"github.com/resonate/core/internal/types/interfaces"
)

var errNotFound = errors.New("vector not found")

type QdrantVectorStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64

	ensureOnce sync.Once
	ensureErr  error
}

func NewQdrantVectorStore(client *qdrant.Client, collectionName string, vectorSize uint64) *QdrantVectorStore {
	return &QdrantVectorStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
	}
}

func (s *QdrantVectorStore) ensureCollection(ctx context.Context) error {
	s.ensureOnce.Do(func() {
		exists, err := s.client.CollectionExists(ctx, s.collectionName)
		if err != nil {
			s.ensureErr = fmt.Errorf("vectorstore: check collection: %w", err)
			return
		}
		if exists {
			return
		}
		s.ensureErr = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     s.vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
	})
	return s.ensureErr
}

func toPayload(meta types.VectorMetadata) map[string]*qdrant.Value {
	payload := map[string]*qdrant.Value{
		"user_id":           qdrant.NewValueString(meta.UserID),
		"archetype":         qdrant.NewValueString(meta.Archetype),
		"style":             qdrant.NewValueString(meta.Style),
		"city":              qdrant.NewValueString(meta.City),
		"subscription_tier": qdrant.NewValueString(meta.SubscriptionTier),
		"last_active_iso":   qdrant.NewValueString(meta.LastActiveISO),
	}
	if meta.AgeRangeMin != nil {
		payload["age_range_min"] = qdrant.NewValueInt(int64(*meta.AgeRangeMin))
	}
	if meta.AgeRangeMax != nil {
		payload["age_range_max"] = qdrant.NewValueInt(int64(*meta.AgeRangeMax))
	}
	return payload
}

func fromPayload(userID string, payload map[string]*qdrant.Value) types.VectorMetadata {
	get := func(k string) string {
		if v, ok := payload[k]; ok {
			return v.GetStringValue()
		}
		return ""
	}
	return types.VectorMetadata{
		UserID:           userID,
		Archetype:        get("archetype"),
		Style:            get("style"),
		City:             get("city"),
		SubscriptionTier: get("subscription_tier"),
		LastActiveISO:    get("last_active_iso"),
	}
}

func (s *QdrantVectorStore) Upsert(ctx context.Context, id string, values []float32, metadata types.VectorMetadata) error {
	if err := s.ensureCollection(ctx); err != nil {
		return err
	}
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(values...),
				Payload: toPayload(metadata),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("vectorstore: upsert %s: %w", id, err)
	}
	return nil
}

// toQdrantFilter translates the narrow {field: {$ne: value}} DSL from
// spec.md §6 into Qdrant's MustNot condition list.
func toQdrantFilter(filter interfaces.VectorFilter) *qdrant.Filter {
	if len(filter.NotEqual) == 0 {
		return nil
	}
	var mustNot []*qdrant.Condition
	for field, value := range filter.NotEqual {
		mustNot = append(mustNot, qdrant.NewMatch(field, value))
	}
	return &qdrant.Filter{MustNot: mustNot}
}

func (s *QdrantVectorStore) Query(ctx context.Context, vector []float32, topK int, filter interfaces.VectorFilter) ([]types.VectorMatch, error) {
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	limit := uint64(topK)
	withPayload := qdrant.NewWithPayload(true)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Filter:         toQdrantFilter(filter),
		Limit:          &limit,
		WithPayload:    withPayload,
	})
	if err != nil {
		return nil, fmt.Errorf("vectorstore: query: %w", err)
	}

	matches := make([]types.VectorMatch, 0, len(points))
	for _, p := range points {
		userID := p.Id.GetUuid()
		if userID == "" {
			userID = fmt.Sprintf("%d", p.Id.GetNum())
		}
		matches = append(matches, types.VectorMatch{
			UserID:   userID,
			Score:    float64(p.Score),
			Metadata: fromPayload(userID, p.Payload),
		})
	}
	return matches, nil
}

func (s *QdrantVectorStore) Get(ctx context.Context, id string) ([]float32, error) {
	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(id)},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("vectorstore: get %s: %w", id, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("vectorstore: %s: %w", id, errNotFound)
	}
	return points[0].Vectors.GetVector().GetData(), nil
}

func (s *QdrantVectorStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(id)),
	})
	if err != nil {
		return fmt.Errorf("vectorstore: delete %s: %w", id, err)
	}
	return nil
}
