package db

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestSchemaCoversEveryTable(t *testing.T) {
	want := []string{"orders", "menus", "menu_configs", "disabled_dates"}

	for _, table := range want {
		found := false
		for _, stmt := range schema {
			if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" (") {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("schema has no CREATE TABLE for %s", table)
		}
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	if _, err := Connect(context.Background(), "://not a url", log); err == nil {
		t.Fatal("expected error for malformed database url")
	}
}

// TestConnectPostgres runs against a real database when DATABASE_URL is set.
func TestConnectPostgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := Connect(ctx, dsn, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	// Schema creation must be repeatable.
	if err := initSchema(ctx, pool); err != nil {
		t.Fatalf("second initSchema: %v", err)
	}
}
