package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/Novip1906/join/internal/firebase"
	"github.com/Novip1906/join/internal/jsontree"
)

// PostgresStorage is a self-hosted replacement for the Realtime Database. Each
// top-level collection (tasks, contacts, users) is one JSONB document; writes
// lock the row and rewrite it, which keeps the REST path semantics intact.
type PostgresStorage struct {
	db  *sql.DB
	log *slog.Logger
	ids firebase.PushIDGenerator
}

func NewPostgresStorage(host, port, user, password, dbname string, log *slog.Logger) (*PostgresStorage, error) {
	psqlInfo := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname,
	)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("cannot open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("cannot connect to db: %w", err)
	}

	s := &PostgresStorage{db: db, log: log}

	if err := s.init(); err != nil {
		return nil, fmt.Errorf("cannot initialize db schema: %w", err)
	}

	return s, nil
}

func (s *PostgresStorage) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		body JSONB NOT NULL,
		updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.db.Exec(schema)
	return err
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) Get(ctx context.Context, path string, out any) error {
	segs := firebase.SplitPath(path)

	var node any
	if len(segs) == 0 {
		root, err := s.loadAll(ctx)
		if err != nil {
			return err
		}
		node = root
	} else {
		var body []byte
		err := s.db.QueryRowContext(ctx, "SELECT body FROM collections WHERE name=$1", segs[0]).Scan(&body)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("select collection %s: %w", segs[0], err)
		}
		var root any
		if err := json.Unmarshal(body, &root); err != nil {
			return fmt.Errorf("decode collection %s: %w", segs[0], err)
		}
		node = jsontree.Get(root, segs[1:])
	}

	if node == nil {
		return ErrNotFound
	}
	data, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *PostgresStorage) Post(ctx context.Context, path string, v any) (string, error) {
	value, err := jsontree.Normalize(v)
	if err != nil {
		return "", err
	}
	key := s.ids.Next(time.Now())
	err = s.update(ctx, path, func(root any, segs []string) any {
		return jsontree.Set(root, append(segs, key), value)
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *PostgresStorage) Put(ctx context.Context, path string, v any) error {
	value, err := jsontree.Normalize(v)
	if err != nil {
		return err
	}
	return s.update(ctx, path, func(root any, segs []string) any {
		return jsontree.Set(root, segs, value)
	})
}

func (s *PostgresStorage) Patch(ctx context.Context, path string, v any) error {
	children, err := patchChildren(v)
	if err != nil {
		return err
	}
	return s.update(ctx, path, func(root any, segs []string) any {
		return jsontree.Merge(root, segs, children)
	})
}

func (s *PostgresStorage) Delete(ctx context.Context, path string) error {
	return s.update(ctx, path, func(root any, segs []string) any {
		return jsontree.Delete(root, segs)
	})
}

// update locks the collection row named by the first path segment and hands
// the decoded document to fn together with the remaining segments.
func (s *PostgresStorage) update(ctx context.Context, path string, fn func(root any, segs []string) any) error {
	segs := firebase.SplitPath(path)
	if len(segs) == 0 {
		return ErrRootWrite
	}
	name := segs[0]

	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var (
			body []byte
			root any
		)
		// FOR UPDATE locks nothing on a missing row, so make sure one exists.
		_, err := tx.ExecContext(ctx, "INSERT INTO collections (name, body) VALUES ($1, '{}') ON CONFLICT (name) DO NOTHING", name)
		if err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
		if err := tx.QueryRowContext(ctx, "SELECT body FROM collections WHERE name=$1 FOR UPDATE", name).Scan(&body); err != nil {
			return fmt.Errorf("lock collection %s: %w", name, err)
		}
		if err := json.Unmarshal(body, &root); err != nil {
			return fmt.Errorf("decode collection %s: %w", name, err)
		}

		root = fn(root, segs[1:])

		if m, ok := root.(map[string]any); root == nil || ok && len(m) == 0 {
			_, err = tx.ExecContext(ctx, "DELETE FROM collections WHERE name=$1", name)
			return err
		}

		data, err := json.Marshal(root)
		if err != nil {
			return fmt.Errorf("encode collection %s: %w", name, err)
		}
		query := `
		INSERT INTO collections (name, body, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
		_, err = tx.ExecContext(ctx, query, name, data)
		return err
	})
}

func (s *PostgresStorage) loadAll(ctx context.Context) (any, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, body FROM collections")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	root := map[string]any{}
	for rows.Next() {
		var (
			name string
			body []byte
		)
		if err := rows.Scan(&name, &body); err != nil {
			return nil, err
		}
		var doc any
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode collection %s: %w", name, err)
		}
		root[name] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(root) == 0 {
		return nil, nil
	}
	return root, nil
}
