package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/internal/elasticsearch"
	"github.com/Novip1906/join/internal/firebase"
	"github.com/Novip1906/join/internal/gateway"
	"github.com/Novip1906/join/internal/kafka"
	"github.com/Novip1906/join/internal/middleware"
	"github.com/Novip1906/join/internal/service"
	"github.com/Novip1906/join/internal/storage"
	"github.com/Novip1906/join/pkg/logging"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	srv     *http.Server
	closers []func() error
}

// OpenDatabase connects the configured storage backend. The returned func
// releases it.
func OpenDatabase(cfg *config.Config, log *slog.Logger) (service.Database, func() error, error) {
	nop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendFirebase:
		opts := []firebase.Option{firebase.WithTimeout(cfg.Firebase.Timeout)}
		if cfg.Firebase.AuthToken != "" {
			opts = append(opts, firebase.WithAuthToken(cfg.Firebase.AuthToken))
		}
		client, err := firebase.NewClient(cfg.Firebase.URL, opts...)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using firebase realtime database", slog.String("url", cfg.Firebase.URL))
		return client, nop, nil

	case config.BackendPostgres:
		p := cfg.DB
		db, err := storage.NewPostgresStorage(p.Host, p.Port, p.User, p.Password, p.DBName, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using postgres storage", slog.String("host", p.Host), slog.String("db", p.DBName))
		return db, db.Close, nil

	case config.BackendMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemoryStorage(), nop, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

func NewServer(cfg *config.Config, log *slog.Logger) (*Server, error) {
	ctx, cancel := context.WithTimeout(contextkeys.WithLogger(context.Background(), log), startupTimeout)
	defer cancel()

	s := &Server{cfg: cfg, log: log}

	db, closeDB, err := OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, closeDB)

	if err := probeDatabase(ctx, db, log); err != nil {
		s.Close()
		return nil, err
	}

	var (
		revoker     service.TokenRevoker = storage.NewMemoryRevocations()
		rateLimiter *middleware.RateLimiter
	)
	if cfg.Redis.Address != "" {
		rdb, err := storage.NewRedisStorage(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		s.closers = append(s.closers, rdb.Close)
		revoker = rdb
		rateLimiter = middleware.NewRateLimiter(rdb.Client(), &cfg.RateLimiter)
	}

	var events interface {
		service.EventSender
		Close() error
	} = kafka.NopProducer{}
	if len(cfg.Kafka.Brokers) > 0 {
		events = kafka.NewEventProducer(&cfg.Kafka)
		log.Info("publishing board events", slog.String("topic", cfg.Kafka.EventsTopic))
	}
	s.closers = append(s.closers, events.Close)

	var (
		index    service.TaskIndex
		esClient *elasticsearch.Client
	)
	if len(cfg.Elasticsearch.Addresses) > 0 {
		esClient, err = elasticsearch.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index, log)
		if err != nil {
			log.Error("elasticsearch unavailable, search falls back to scanning", logging.Err(err))
		} else {
			index = esClient
		}
	}

	authService := service.NewAuthService(cfg.JWT, cfg.Params, log, db, revoker)
	boardService := service.NewBoardService(cfg.Params, log, db, events, index)
	contactsService := service.NewContactsService(cfg.Params, log, db, events)

	if esClient != nil {
		if tasks, err := boardService.ListTasks(ctx); err != nil {
			log.Error("reindex skipped", logging.Err(err))
		} else if _, err := esClient.Reindex(ctx, tasks); err != nil {
			log.Error("reindex incomplete", logging.Err(err))
		}
	}

	var opts []gateway.Option
	if rateLimiter != nil {
		opts = append(opts, gateway.WithRateLimiter(rateLimiter))
	}
	gw, err := gateway.New(log, gateway.Services{
		Auth:     authService,
		Board:    boardService,
		Contacts: contactsService,
	}, opts...)
	if err != nil {
		s.Close()
		return nil, err
	}

	s.srv = &http.Server{
		Addr:              cfg.Address,
		Handler:           gw.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// probeDatabase reads the tasks collection once so that a misconfigured
// database fails at startup rather than on the first request.
func probeDatabase(ctx context.Context, db service.Database, log *slog.Logger) error {
	var raw json.RawMessage
	err := db.Get(ctx, "tasks", &raw)
	switch {
	case err == nil, errors.Is(err, storage.ErrNotFound):
		return nil
	case firebase.IsPermissionDenied(err):
		return fmt.Errorf("database rules reject access, check firebase.auth_token: %w", err)
	default:
		log.Warn("database probe failed, continuing", logging.Err(err))
		return nil
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", slog.String("address", s.cfg.Address))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func (s *Server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log.Error("close error", logging.Err(err))
		}
	}
	s.closers = nil
}
