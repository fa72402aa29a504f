package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/promptforge/promptforge/internal/advisor"
	"github.com/promptforge/promptforge/internal/catalog"
	"github.com/promptforge/promptforge/internal/classify"
	"github.com/promptforge/promptforge/internal/config"
	"github.com/promptforge/promptforge/internal/credentials"
	"github.com/promptforge/promptforge/internal/db"
	"github.com/promptforge/promptforge/internal/extract"
	"github.com/promptforge/promptforge/internal/generate"
	"github.com/promptforge/promptforge/internal/llm"
	"github.com/promptforge/promptforge/internal/logging"
	"github.com/promptforge/promptforge/internal/store"
)

// env is what every command needs: the config and a way to release the
// log file and the database.
type env struct {
	cfg      *config.Config
	database *sqlx.DB
	closers  []func() error
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}
	e.closers = append(e.closers, logging.Setup(cfg))
	return e, nil
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

// openDB connects to the configured database and applies pending migrations.
func (e *env) openDB() (*sqlx.DB, error) {
	if e.database != nil {
		return e.database, nil
	}
	database, err := db.New(e.cfg.DB.Driver, e.cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database, e.cfg.DB.Driver); err != nil {
		_ = database.Close()
		return nil, err
	}
	e.database = database
	e.closers = append(e.closers, database.Close)
	return database, nil
}

// catalog returns the built-in templates plus any from templates.file.
func (e *env) catalog() (*catalog.Catalog, error) {
	templates := catalog.Builtin()
	if e.cfg.Templates.File != "" {
		extra, err := catalog.LoadFile(e.cfg.Templates.File)
		if err != nil {
			return nil, err
		}
		templates = append(templates, extra...)
	}
	return catalog.New(templates...)
}

func (e *env) classifier() (*classify.Classifier, error) {
	if e.cfg.Classifier.MarkersFile == "" {
		return classify.Default(), nil
	}
	tables, err := classify.LoadTables(e.cfg.Classifier.MarkersFile)
	if err != nil {
		return nil, err
	}
	return classify.New(tables), nil
}

func (e *env) advisor() (*advisor.Advisor, error) {
	cat, err := e.catalog()
	if err != nil {
		return nil, err
	}
	c, err := e.classifier()
	if err != nil {
		return nil, err
	}
	return advisor.New(c, cat), nil
}

// resolver returns a credential resolver backed by the database.
func (e *env) resolver() (*credentials.Resolver, error) {
	database, err := e.openDB()
	if err != nil {
		return nil, err
	}
	return credentials.New(e.cfg, store.NewCredentialStore(database)), nil
}

// generator builds a Generator for the configured LLM provider. Without a
// provider, or without a key for it, the generator uses the fallback prompt.
func (e *env) generator(ctx context.Context) (*generate.Generator, error) {
	if e.cfg.LLM.Provider == "" {
		return generate.New(nil, ""), nil
	}
	r, err := e.resolver()
	if err != nil {
		return nil, err
	}
	key, _ := r.Get(ctx, llm.KeyProvider(e.cfg.LLM.Provider))
	completer, err := llm.New(e.cfg, key)
	if err != nil {
		return nil, err
	}
	return generate.New(completer, e.cfg.LLM.Provider), nil
}

// readInput returns the text from --file when set, otherwise the joined args.
func readInput(ctx context.Context, args []string, file string) (string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", errors.New("pass either text arguments or --file, not both")
		}
		return extract.File(ctx, file)
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", errors.New("no input: pass text as arguments or use --file")
	}
	return text, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
