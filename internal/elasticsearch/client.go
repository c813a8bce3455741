package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	es "github.com/elastic/go-elasticsearch/v9"

	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/pkg/logging"
)

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

type Client struct {
	es    *es.Client
	index string
	log   *slog.Logger
}

type taskDocument struct {
	Id          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Category    string `json:"category"`
	Prio        string `json:"prio"`
	Timestamp   int64  `json:"timestamp"`
}

func NewClient(addresses []string, index string, log *slog.Logger) (*Client, error) {
	cfg := es.Config{
		Addresses: addresses,
	}
	c, err := es.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	client := &Client{
		es:    c,
		index: index,
		log:   log,
	}

	if err := client.ensureIndex(); err != nil {
		return nil, err
	}

	return client, nil
}

// Search returns the ids of tasks whose title or description contains query,
// ignoring case.
func (c *Client) Search(ctx context.Context, query string) ([]int64, error) {
	pattern := "*" + wildcardEscaper.Replace(strings.TrimSpace(query)) + "*"
	contains := func(field string) map[string]any {
		return map[string]any{
			"wildcard": map[string]any{
				field: map[string]any{"value": pattern, "case_insensitive": true},
			},
		}
	}

	body, err := json.Marshal(map[string]any{
		"size":    1000,
		"_source": []string{"id"},
		"query": map[string]any{
			"bool": map[string]any{
				"should":               []any{contains("title.raw"), contains("description.raw")},
				"minimum_should_match": 1,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("es search error: %s", res.String())
	}

	var raw struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Id int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(raw.Hits.Hits))
	for _, h := range raw.Hits.Hits {
		ids = append(ids, h.Source.Id)
	}
	return ids, nil
}

func (c *Client) IndexTask(ctx context.Context, task *models.Task) error {
	body, err := json.Marshal(taskDocument{
		Id:          task.Id,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Category:    task.Category,
		Prio:        string(task.Prio),
		Timestamp:   task.Timestamp,
	})
	if err != nil {
		return err
	}

	res, err := c.es.Index(
		c.index,
		bytes.NewReader(body),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(fmt.Sprint(task.Id)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("es index error: %s", res.String())
	}

	return nil
}

func (c *Client) DeleteTask(ctx context.Context, taskId int64) error {
	res, err := c.es.Delete(
		c.index,
		fmt.Sprint(taskId),
		c.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete error: %s", res.String())
	}
	return nil
}

// Reindex pushes every task into the index. Tasks written while the index
// was unreachable are picked up this way on the next start.
func (c *Client) Reindex(ctx context.Context, tasks []*models.Task) (int, error) {
	indexed := 0
	for _, t := range tasks {
		if err := c.IndexTask(ctx, t); err != nil {
			c.log.Error("reindex task failed", slog.Int64("task_id", t.Id), logging.Err(err))
			continue
		}
		indexed++
	}
	if indexed < len(tasks) {
		return indexed, fmt.Errorf("reindexed %d of %d tasks", indexed, len(tasks))
	}
	c.log.Info("elasticsearch reindexed", slog.String("index", c.index), slog.Int("tasks", indexed))
	return indexed, nil
}

func (c *Client) ensureIndex() error {
	res, err := c.es.Indices.Exists([]string{c.index})
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		c.log.Info("elasticsearch index exists", "index", c.index)
		return nil
	}

	if res.StatusCode != 404 {
		return fmt.Errorf("unexpected status checking index: %s", res.String())
	}

	c.log.Info("creating elasticsearch index", "index", c.index)

	mapping := `
{
  "mappings": {
    "properties": {
      "id": { "type": "long" },
      "title": { "type": "text", "fields": { "raw": { "type": "keyword" } } },
      "description": { "type": "text", "fields": { "raw": { "type": "keyword" } } },
      "status": { "type": "keyword" },
      "category": { "type": "keyword" },
      "prio": { "type": "keyword" },
      "timestamp": { "type": "date", "format": "epoch_millis" }
    }
  }
}`

	createRes, err := c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("create index error: %s", createRes.String())
	}

	c.log.Info("elasticsearch index created", "index", c.index)
	return nil
}
