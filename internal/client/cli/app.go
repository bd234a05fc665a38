// Package cli is the interactive front end: a small REPL over the
// session and truck-stop stores. It owns no domain state of its own;
// commands call store operations and render what the stores expose.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/openroad/stopfinder/internal/client/api"
	"github.com/openroad/stopfinder/internal/client/config"
	"github.com/openroad/stopfinder/internal/client/router"
	"github.com/openroad/stopfinder/internal/client/session"
	"github.com/openroad/stopfinder/internal/client/storage"
	"github.com/openroad/stopfinder/internal/client/truckstops"
	"github.com/openroad/stopfinder/internal/logging"
)

type App struct {
	config  *config.Config
	session *session.Store
	stops   *truckstops.Store
	router  *router.Router
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
}

// NewApp wires the client together: local database, HTTP API client,
// both stores and the router, then restores any persisted session.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)

	sess := session.NewStore(apiClient, db, log)
	sess.Restore(ctx)

	return &App{
		config:  cfg,
		session: sess,
		stops:   truckstops.NewStore(apiClient, log),
		router:  router.New(sess),
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Close releases the local database handle.
func (a *App) Close() error {
	return a.db.Close()
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Println("stopfinder CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if user := a.session.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Name)
	}
	return ""
}

// enterHome resolves the guarded home view. When the guard redirects,
// the user is told to log in and the calling command backs off.
func (a *App) enterHome() bool {
	nav, err := a.router.Resolve(router.PathHome)
	if err != nil {
		return false
	}
	if nav.Redirected {
		printlnFn("You need to log in first.")
		return false
	}
	return true
}
