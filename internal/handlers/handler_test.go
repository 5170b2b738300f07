// handler_test.go provides shared helpers for handler integration
// tests. Tests are skipped if PostgreSQL is not available; the cache is
// left nil so handlers take the direct DB path.
package handlers

import (
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"desaportal/internal/database"
	"desaportal/internal/service"
	"desaportal/internal/store"
)

type testEnv struct {
	db       *sql.DB
	router   http.Handler
	articles *store.ArticleStore
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newTestEnv opens the test database, runs migrations, and mounts the
// article and catalog handlers on a bare router without auth middleware.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "desaportal")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "desaportal")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	articleStore := store.NewArticleStore(db)
	svc := service.NewArticleService(articleStore)

	articleHandlers := NewArticles(svc, articleStore, nil)
	publicHandlers := NewPublic(svc, articleStore,
		store.NewProductStore(db), store.NewCulinaryStore(db),
		store.NewBookletStore(db), store.NewProfileStore(db), nil)

	r := chi.NewRouter()
	r.Get("/articles", articleHandlers.List)
	r.Post("/articles", articleHandlers.Create)
	r.Get("/articles/{id}", articleHandlers.Get)
	r.Put("/articles/{id}", articleHandlers.Update)
	r.Delete("/articles/{id}", articleHandlers.Delete)
	r.Get("/berita", publicHandlers.ListArticles)
	r.Get("/berita/{slug}", publicHandlers.GetArticle)

	return &testEnv{db: db, router: r, articles: articleStore}
}

// cleanArticle removes a test article by id when the test finishes.
func (e *testEnv) cleanArticle(t *testing.T, id string) {
	t.Helper()
	t.Cleanup(func() {
		e.db.Exec("DELETE FROM articles WHERE id = $1", id)
	})
}
