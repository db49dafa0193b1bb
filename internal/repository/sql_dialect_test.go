package repository

import (
	"strings"
	"testing"
)

func TestBuildSearchConditionSQLite(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("sqlite", []string{"products.title", "products.description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := "products.title LIKE ? OR products.description LIKE ?"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildSearchConditionPostgres(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("postgres", []string{"products.title"})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if !strings.Contains(condition, "ILIKE") {
		t.Fatalf("postgres condition should use ILIKE, got %s", condition)
	}
}

func TestBuildSearchConditionSkipsBlankColumns(t *testing.T) {
	condition, argCount := buildSearchConditionByDialect("sqlite", []string{"  ", "products.title", ""})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if condition != "products.title LIKE ?" {
		t.Fatalf("unexpected condition %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%watch%", 3)
	if len(args) != 3 {
		t.Fatalf("want 3 args got %d", len(args))
	}
	for _, arg := range args {
		if arg != "%watch%" {
			t.Fatalf("unexpected arg %v", arg)
		}
	}
}
