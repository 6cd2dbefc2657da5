package search

import (
	"context"
	"strconv"

	"github.com/meilisearch/meilisearch-go"

	"realty_portal/internal/domain"
)

// Indexer keeps a full-text index of listings.
type Indexer interface {
	IndexListing(ctx context.Context, l *domain.Listing) error
	RemoveListing(ctx context.Context, id uint) error
	SearchIDs(ctx context.Context, query string, limit int) ([]uint, error)
}

// DocumentIndex is the part of *meilisearch.Index the client uses.
type DocumentIndex interface {
	AddDocuments(documentsPtr interface{}, primaryKey ...string) (*meilisearch.TaskInfo, error)
	DeleteDocument(identifier string) (*meilisearch.TaskInfo, error)
	Search(query string, request *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error)
}

type SearchClient struct {
	client *meilisearch.Client
	index  DocumentIndex
	uid    string
}

// ListingDocument is the indexed shape of a listing.
type ListingDocument struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Price       string  `json:"price"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	CreatedAt   int64   `json:"created_at"`
	ImageCount  int     `json:"image_count"`
	RoomSqm     float64 `json:"room_sqm"`
}

func NewSearchClient(host, apiKey, uid string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})
	return &SearchClient{client: client, index: client.Index(uid), uid: uid}
}

// NewSearchClientWithIndex wraps an existing index; InitIndex is unavailable.
func NewSearchClientWithIndex(index DocumentIndex) *SearchClient {
	return &SearchClient{index: index}
}

// InitIndex creates the index and configures attributes
func (s *SearchClient) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.uid,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	idx := s.client.Index(s.uid)
	if _, err = idx.UpdateSearchableAttributes(&[]string{
		"title",
		"location",
		"category",
		"description",
	}); err != nil {
		return err
	}
	if _, err = idx.UpdateFilterableAttributes(&[]string{"type", "category"}); err != nil {
		return err
	}
	_, err = idx.UpdateSortableAttributes(&[]string{"created_at"})
	return err
}

// Document converts a listing to its index document.
func Document(l *domain.Listing) ListingDocument {
	doc := ListingDocument{
		ID:          l.ID,
		Title:       l.Title,
		Type:        string(l.Type),
		Category:    l.Category,
		Price:       l.Price,
		Location:    l.Location,
		Description: l.Description,
		CreatedAt:   l.CreatedAt.Unix(),
		ImageCount:  len(l.Images),
	}
	for _, r := range l.Rooms {
		doc.RoomSqm += r.Sqm
	}
	return doc
}

// IndexListing adds or replaces a listing document
func (s *SearchClient) IndexListing(_ context.Context, l *domain.Listing) error {
	_, err := s.index.AddDocuments([]ListingDocument{Document(l)}, "id")
	return err
}

func (s *SearchClient) RemoveListing(_ context.Context, id uint) error {
	_, err := s.index.DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

// SearchIDs returns matching listing ids in relevance order
func (s *SearchClient) SearchIDs(_ context.Context, query string, limit int) ([]uint, error) {
	res, err := s.index.Search(query, &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(res.Hits))
	for _, hit := range res.Hits {
		m, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := m["id"].(float64); ok && id > 0 {
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}
