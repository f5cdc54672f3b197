package service

import (
	"encoding/json"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/pkg/apperror"
)

const threadIndex = "threads"

// SearchService mirrors threads into Meilisearch and answers full-text
// queries. All methods are no-ops when the client is nil, so the rest of
// the app never has to care whether search is configured.
type SearchService interface {
	IndexThread(thread *entity.Thread) error
	DeleteThread(id string) error
	SearchThreads(query, categoryID string, limit int64) ([]map[string]any, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndexes()
	}
	return s
}

func (s *searchService) initIndexes() {
	filterable := []any{"category_id", "author_id"}
	if _, err := s.client.Index(threadIndex).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("failed to update %s filterable attributes: %v", threadIndex, err)
	}

	sortable := []string{"created_at", "view_count"}
	if _, err := s.client.Index(threadIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to update %s sortable attributes: %v", threadIndex, err)
	}
}

type threadDoc struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"category_id"`
	AuthorID   string `json:"author_id"`
	ViewCount  int64  `json:"view_count"`
	CreatedAt  int64  `json:"created_at"`
}

// cleanForIndex strips markup so the index only holds searchable text.
func (s *searchService) cleanForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	clean := html.UnescapeString(s.sanitizer.Sanitize(content))
	return strings.Join(strings.Fields(clean), " ")
}

func (s *searchService) IndexThread(thread *entity.Thread) error {
	if s.client == nil {
		return nil
	}

	doc := threadDoc{
		ID:         thread.ID,
		Title:      thread.Title,
		Content:    s.cleanForIndex(thread.Content),
		CategoryID: thread.CategoryID,
		AuthorID:   thread.AuthorID,
		ViewCount:  thread.ViewCount,
		CreatedAt:  thread.CreatedAt.Unix(),
	}

	primaryKey := "id"
	_, err := s.client.Index(threadIndex).AddDocuments([]threadDoc{doc}, &primaryKey)
	return err
}

func (s *searchService) DeleteThread(id string) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(threadIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchThreads(query, categoryID string, limit int64) ([]map[string]any, error) {
	if s.client == nil {
		return []map[string]any{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	req := &meilisearch.SearchRequest{Limit: limit}
	if categoryID != "" {
		req.Filter = "category_id = " + categoryID
	}

	resp, err := s.client.Index(threadIndex).Search(query, req)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	return decodeHits(resp.Hits), nil
}

// decodeHits turns raw Meilisearch hits (field name to raw JSON) into plain
// maps. Fields that fail to decode are skipped rather than failing the search.
func decodeHits(raw []meilisearch.Hit) []map[string]any {
	hits := make([]map[string]any, 0, len(raw))
	for _, hit := range raw {
		doc := make(map[string]any, len(hit))
		for field, value := range hit {
			var decoded any
			if err := json.Unmarshal(value, &decoded); err != nil {
				continue
			}
			doc[field] = decoded
		}
		hits = append(hits, doc)
	}
	return hits
}
