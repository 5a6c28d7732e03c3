package repository

import (
	"testing"
)

func TestCaseInsensitiveLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildCaseInsensitiveLikeCondition(nil, []string{"name", " ", "description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	want := "LOWER(name) LIKE ? OR LOWER(description) LIKE ?"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestCaseInsensitiveLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildCaseInsensitiveLikeConditionByDialect("postgres", []string{"name"})
	if argCount != 1 || condition != "name ILIKE ?" {
		t.Fatalf("unexpected postgres condition: %s (%d)", condition, argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%tea%", 3)
	if len(args) != 3 {
		t.Fatalf("args length want 3 got %d", len(args))
	}
	for i, arg := range args {
		if arg != "%tea%" {
			t.Fatalf("arg %d mismatch: %v", i, arg)
		}
	}
}
