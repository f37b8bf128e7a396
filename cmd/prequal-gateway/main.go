package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/prequalify/prequal/internal/api"
	"github.com/prequalify/prequal/internal/auth"
	"github.com/prequalify/prequal/internal/cache"
	"github.com/prequalify/prequal/internal/config"
	"github.com/prequalify/prequal/internal/ledger"
	"github.com/prequalify/prequal/internal/ledger/pgstore"
	"github.com/prequalify/prequal/internal/ledger/sqlstore"
	"github.com/prequalify/prequal/internal/underwriting"
)

const defaultAPIKey = "default_dev_key_change_in_production"

func main() {
	if err := runFn(os.Args[1:], os.Getenv, listenAndServe, newServer); err != nil {
		fatalf("server error: %v", err)
	}
}

var runFn = run
var fatalf = log.Fatalf

func newServer(cfg config.Config) (*http.Server, error) {
	rules := underwriting.DefaultRules()
	if cfg.RulesPath != "" {
		loaded, err := underwriting.LoadRules(cfg.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
		rules = loaded
	}

	store, err := openStore(cfg.DB)
	if err != nil {
		return nil, err
	}

	service := api.NewApplicationService(rules, store)
	if cfg.Cache.Enabled {
		service.Cache = cache.NewRedisCache(cfg.Cache.RedisAddr)
		service.CacheTTL = time.Duration(cfg.Cache.TTLSeconds) * time.Second
	}

	h := &api.Handler{
		Auth:    &auth.APIKeyAuthenticator{Key: cfg.APIKey},
		Service: service,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	var handler http.Handler = api.NewRouter(h)
	if cfg.RateLimit.Enabled {
		handler = api.RateLimitMiddleware(api.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst), handler)
	}
	handler = api.RequestLogger(logger, handler)

	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}

func openStore(db config.DBConfig) (ledger.Store, error) {
	switch db.Driver {
	case "", "memory":
		return ledger.NewInMemoryStore(), nil
	case "sqlite":
		conn, err := sql.Open("sqlite", db.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := ledger.Migrate(conn, ledger.DBSQLite); err != nil {
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return sqlstore.New(conn), nil
	case "postgres":
		conn, err := sql.Open("postgres", db.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := ledger.Migrate(conn, ledger.DBPostgres); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return pgstore.New(conn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", db.Driver)
	}
}

type envFn func(string) string
type listenFn func(*http.Server) error
type serverFactory func(cfg config.Config) (*http.Server, error)

func run(args []string, getenv envFn, listen listenFn, factory serverFactory) error {
	fs := flag.NewFlagSet("prequal-gateway", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to prequal config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfgFile := *configPath
	if cfgFile == "" {
		cfgFile = getenv("PREQUAL_CONFIG_PATH")
	}

	var cfg config.Config
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	cfg.ListenAddr = firstNonEmpty(getenv("PREQUAL_LISTEN_ADDR"), cfg.ListenAddr, ":8080")
	cfg.APIKey = firstNonEmpty(getenv("PREQUAL_API_KEY"), cfg.APIKey, defaultAPIKey)
	cfg.DB.Driver = firstNonEmpty(getenv("PREQUAL_DB_DRIVER"), cfg.DB.Driver, "memory")
	cfg.DB.DSN = firstNonEmpty(getenv("PREQUAL_DB_DSN"), cfg.DB.DSN)
	cfg.RulesPath = firstNonEmpty(getenv("PREQUAL_RULES_PATH"), cfg.RulesPath)

	server, err := factory(cfg)
	if err != nil {
		return err
	}

	log.Printf("prequal-gateway listening on %s", cfg.ListenAddr)
	if err := listen(server); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func listenAndServe(server *http.Server) error {
	return server.ListenAndServe()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
