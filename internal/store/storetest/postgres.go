// Package storetest runs a throwaway postgres for integration tests outside the store package.
package storetest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"inventory-service/internal/store"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start launches postgres, opens a store on it and creates the catalog tables.
// The returned stop func closes the store and removes the container.
func Start(ctx context.Context) (*store.Store, func(), error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("inventory_test"),
		postgres.WithUsername("app"),
		postgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	stopContainer := func() { _ = pgContainer.Terminate(context.Background()) }

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		stopContainer()
		return nil, nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	s, err := store.NewStore(connStr)
	if err != nil {
		stopContainer()
		return nil, nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close()
		stopContainer()
		return nil, nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, func() {
		s.Close()
		stopContainer()
	}, nil
}

// Reset empties every catalog table and restarts the id sequences
func Reset(t testing.TB, s *store.Store) {
	t.Helper()
	_, err := s.GetDB().Exec("TRUNCATE " + strings.Join(store.TableNames(), ", ") + " RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
}
