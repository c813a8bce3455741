package root

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Novip1906/join/internal/app"
	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/internal/service"
	"github.com/Novip1906/join/pkg/logging"
)

// openDatabase is swapped in tests so several commands can share one store.
var openDatabase = app.OpenDatabase

type services struct {
	board    *service.BoardService
	contacts *service.ContactsService
}

func loadConfig(opts *options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if opts.memory {
		cfg.Storage.Backend = config.BackendMemory
	}
	return cfg, nil
}

// openServices also puts the --log-level logger into the command context, so
// services log through it.
func openServices(cmd *cobra.Command, opts *options) (*services, func(), error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	log := logging.NewLogger(cmd.ErrOrStderr(), logging.ParseLevel(opts.logLevel))
	cmd.SetContext(contextkeys.WithLogger(cmd.Context(), log))

	db, closeDB, err := openDatabase(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = closeDB()
	}

	return &services{
		board:    service.NewBoardService(cfg.Params, log, db, nil, nil),
		contacts: service.NewContactsService(cfg.Params, log, db, nil),
	}, cleanup, nil
}
