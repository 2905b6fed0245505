package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_WhereOrderLimitOffset(t *testing.T) {
	t.Parallel()

	query, args, err := Select("f.*").
		From("fixtures f").
		Join("teams h ON h.id = f.home_team_id").
		Where(
			Eq("f.status", "pending"),
			ILike("h.name", "Ars%"),
		).
		OrderBy("f.match_date", "f.id").
		Limit(20).
		Offset(40).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT f.* FROM fixtures f JOIN teams h ON h.id = f.home_team_id" +
		" WHERE f.status = $1 AND h.name ILIKE $2" +
		" ORDER BY f.match_date, f.id LIMIT 20 OFFSET 40"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"pending", "Ars%"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_ExprPlaceholderRewrite(t *testing.T) {
	t.Parallel()

	query, args, err := Select("*").
		From("fixtures").
		Where(
			Eq("status", "completed"),
			Expr("match_date >= ? AND match_date < ?", "2019-05-01", "2019-06-01"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT * FROM fixtures WHERE status = $1 AND match_date >= $2 AND match_date < $3"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}

func TestSelect_RequiresTableAndColumns(t *testing.T) {
	t.Parallel()

	if _, _, err := Select().From("teams").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsert_WithReturningSuffix(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("teams").
		Columns("name", "created_at").
		Values("Arsenal FC", "now").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO teams (name, created_at) VALUES ($1, $2) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
}

func TestInsert_ValueCountMismatch(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertInto("teams").Columns("name").Values("a", "b").ToSQL(); err == nil {
		t.Fatal("expected error for value count mismatch")
	}
}

func TestUpdate_SetsAndWhere(t *testing.T) {
	t.Parallel()

	query, args, err := Update("users").
		Set("valid_token", nil).
		Set("updated_at", "now").
		Where(Eq("id", int64(7))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE users SET valid_token = $1, updated_at = $2 WHERE id = $3"
	if query != want {
		t.Fatalf("unexpected query:\ngot:  %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{nil, "now", int64(7)}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDelete_RequiresConditions(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("teams").ToSQL(); err == nil {
		t.Fatal("expected error for delete without conditions")
	}

	query, args, err := DeleteFrom("teams").Where(Eq("id", int64(3))).ToSQL()
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}
	if query != "DELETE FROM teams WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %d", len(args))
	}
}

func TestNe_Condition(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").
		From("fixtures").
		Where(Ne("id", int64(9))).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	if query != "SELECT id FROM fixtures WHERE id <> $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if !reflect.DeepEqual(args, []any{int64(9)}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdate_RawValue(t *testing.T) {
	t.Parallel()

	query, args, err := Update("users").
		Set("valid_token", nil).
		Set("updated_at", Now()).
		Where(Eq("id", int64(4))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}
	if query != "UPDATE users SET valid_token = $1, updated_at = NOW() WHERE id = $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
}
