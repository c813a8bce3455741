package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/pkg/logging"
)

// Search filters the board by title or description. An empty query returns
// every task. Index hits come first, in index order; tasks the index missed
// are appended and indexed. If the index fails, tasks are matched by
// substring only.
func (s *BoardService) Search(ctx context.Context, query string) (*Board, error) {
	log := s.logger(ctx)
	ctx = contextkeys.WithLogger(ctx, log)

	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return BuildBoard(ctx, tasks), nil
	}

	matched := MatchTasks(tasks, query)
	if s.index != nil {
		ids, err := s.index.Search(ctx, query)
		if err == nil {
			return BuildBoard(ctx, s.mergeHits(ctx, matched, ids)), nil
		}
		log.Error("search index error, falling back to scan", logging.Err(err))
	}

	log.Debug("search", slog.String("query", query), slog.Int("matched", len(matched)))
	return BuildBoard(ctx, matched), nil
}

// mergeHits orders matched tasks by the index hits. Hits that are not matched
// are dropped; matched tasks without a hit go last and are indexed.
func (s *BoardService) mergeHits(ctx context.Context, matched []*models.Task, ids []int64) []*models.Task {
	byId := make(map[int64]*models.Task, len(matched))
	for _, t := range matched {
		byId[t.Id] = t
	}

	out := make([]*models.Task, 0, len(matched))
	seen := make(map[int64]bool, len(matched))
	for _, id := range ids {
		if t, ok := byId[id]; ok && !seen[id] {
			out = append(out, t)
			seen[id] = true
		}
	}

	for _, t := range matched {
		if seen[t.Id] {
			continue
		}
		out = append(out, t)
		s.indexTask(ctx, t)
	}
	return out
}

// MatchTasks keeps the tasks whose title or description contains query,
// ignoring case.
func MatchTasks(tasks []*models.Task, query string) []*models.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []*models.Task{}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}
