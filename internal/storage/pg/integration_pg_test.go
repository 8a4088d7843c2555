package pg

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/studycircle-dev/studycircle/internal/config"
	"github.com/studycircle-dev/studycircle/internal/domain"
	"github.com/studycircle-dev/studycircle/internal/logger"
)

var storage *Storage

func TestMain(m *testing.M) {
	logger.Initialize("error", false)
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "studycircle"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	storage, err := New(&config.Config{
		Public:  config.Public{Pg: config.Pg{Host: host, Port: port, User: dbUser, Dbname: dbName}},
		Private: config.Private{PgPassword: dbPassword},
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

var userSeq atomic.Int64

// mustCreateUser inserts a fresh user with a unique email for test fixtures.
func mustCreateUser(t *testing.T) domain.UserId {
	t.Helper()
	id, err := storage.SaveUser(domain.User{
		Email:    fmt.Sprintf("user%d@example.com", userSeq.Add(1)),
		PassHash: []byte("hash"),
	})
	if err != nil {
		t.Fatalf("failed to create fixture user: %s", err)
	}
	return id
}

func mustCreateContent(t *testing.T, author domain.UserId) *domain.ContentItem {
	t.Helper()
	item, err := storage.CreateContent(domain.ContentCreationData{
		AuthorId: author,
		Scope:    domain.ScopeGroup,
		ScopeId:  "g-test",
		Kind:     domain.ContentPost,
		Body:     "fixture body",
	})
	if err != nil {
		t.Fatalf("failed to create fixture content: %s", err)
	}
	return item
}

func newUuid() string {
	return uuid.NewString()
}
