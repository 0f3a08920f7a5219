package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"marketplace/api/config"
	"marketplace/api/database"
	"marketplace/api/logger"
)

const clickHouseImage = "clickhouse/clickhouse-server:24.8-alpine"

var (
	sharedCHContainer testcontainers.Container
	sharedCH          *database.ClickHouseClient
	sharedCHOnce      sync.Once
	sharedCHErr       error
)

// getTestClickHouse returns a ClickHouse client with
// database/clickhouse_schema.sql applied and merges stopped on both count
// tables, so every insert stays a separate part.
func getTestClickHouse(t *testing.T) *database.ClickHouseClient {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedCHOnce.Do(func() {
		sharedCH, sharedCHErr = setupTestClickHouse()
	})
	if sharedCHErr != nil {
		t.Fatalf("Failed to setup test ClickHouse: %v", sharedCHErr)
	}
	return sharedCH
}

func setupTestClickHouse() (*database.ClickHouseClient, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        clickHouseImage,
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		Env: map[string]string{
			"CLICKHOUSE_DB":                        "marketplace",
			"CLICKHOUSE_USER":                      "market",
			"CLICKHOUSE_PASSWORD":                  "test_password",
			"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1",
		},
		WaitingFor: wait.ForAll(
			wait.ForHTTP("/ping").WithPort("8123/tcp"),
			wait.ForListeningPort("9000/tcp"),
		).WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}
	sharedCHContainer = container

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "9000")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	client, err := database.NewClickHouseDB(ctx, config.ClickHouseConfig{
		Host:       host,
		NativePort: port.Int(),
		DBName:     "marketplace",
		Username:   "market",
		Password:   "test_password",
	}, logger.NewNop())
	if err != nil {
		return nil, err
	}

	schema, err := os.ReadFile("../database/clickhouse_schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	// The native protocol takes one statement per call.
	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stripSQLComments(stmt)) == "" {
			continue
		}
		if err := client.Conn.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	for _, table := range []string{categorySpecificCountsView, generalCountsView} {
		if err := client.Conn.Exec(ctx, "SYSTEM STOP MERGES "+table); err != nil {
			return nil, fmt.Errorf("failed to stop merges on %s: %w", table, err)
		}
	}
	return client, nil
}

func stripSQLComments(stmt string) string {
	var b strings.Builder
	for _, line := range strings.Split(stmt, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
