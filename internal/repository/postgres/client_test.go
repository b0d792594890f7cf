package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestBuildDSN(t *testing.T) {
	cfg := &Config{
		Host:     "localhost",
		Port:     "5432",
		User:     "challenge",
		Password: "secret",
		Database: "challenges",
		MaxConns: 10,
		MinConns: 2,
	}

	want := "user=challenge password=secret host=localhost port=5432 dbname=challenges pool_max_conns=10 pool_min_conns=2"
	got := buildDSN(cfg)
	if got != want {
		t.Fatalf("buildDSN() = %q, want %q", got, want)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	if !isUniqueViolation(unique) {
		t.Fatal("expected unique violation to be detected")
	}

	wrapped := fmt.Errorf("failed to save member: %w", unique)
	if !isUniqueViolation(wrapped) {
		t.Fatal("expected wrapped unique violation to be detected")
	}

	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation must not be treated as unique violation")
	}

	if isUniqueViolation(errors.New("plain error")) {
		t.Fatal("plain error must not be treated as unique violation")
	}
}
