package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"user-access-service/internal/domain/entity"
)

// SearchIndex mirrors account data into Elasticsearch. All writes are best
// effort: the search index lags behind storage rather than failing the
// operation that triggered the write. A nil index disables the feature.
type SearchIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewSearchIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *SearchIndex {
	if es == nil || index == "" {
		return nil
	}
	return &SearchIndex{ES: es, Index: index, Logger: logger}
}

func (s *SearchIndex) enabled() bool {
	return s != nil && s.ES != nil && s.Index != ""
}

// IndexUser upserts the account's public fields as a search document.
func (s *SearchIndex) IndexUser(ctx context.Context, u *entity.User) {
	if !s.enabled() {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       u.Role.String(),
		"is_active":  u.IsActive,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.Index, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.log().WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// DeleteUser removes the account's search document.
func (s *SearchIndex) DeleteUser(ctx context.Context, id string) {
	if !s.enabled() {
		return
	}
	req := esapi.DeleteRequest{Index: s.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.log().WithError(err).WithField("user_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match query over the user index.
func (s *SearchIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if !s.enabled() {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *SearchIndex) log() *logrus.Logger {
	if s != nil && s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}
