package postgres

import (
	"strings"
	"testing"

	"arxivetl/internal/schema"
)

func TestBuildCreateTableSQL_Documents(t *testing.T) {
	t.Parallel()

	stmt, err := BuildCreateTableSQL(schema.Documents())
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}

	wantParts := []string{
		`CREATE TABLE IF NOT EXISTS "documents"`,
		`"id" TEXT NOT NULL`,
		`"journal-ref" TEXT`,
		`"update_date" DATE`,
		`PRIMARY KEY ("id")`,
	}
	for _, w := range wantParts {
		if !strings.Contains(stmt, w) {
			t.Fatalf("DDL missing %q:\n%s", w, stmt)
		}
	}
}

func TestBuildCreateTableSQL_Categories(t *testing.T) {
	t.Parallel()

	stmt, err := BuildCreateTableSQL(schema.Categories())
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}

	wantParts := []string{
		`CREATE TABLE IF NOT EXISTS "categories"`,
		`"id" BIGINT NOT NULL`,
		`"arxiv_id" TEXT NOT NULL`,
		`FOREIGN KEY ("arxiv_id") REFERENCES "documents" ("id")`,
	}
	for _, w := range wantParts {
		if !strings.Contains(stmt, w) {
			t.Fatalf("DDL missing %q:\n%s", w, stmt)
		}
	}
}

func TestBuildCreateTableSQL_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := BuildCreateTableSQL(schema.Table{}); err == nil {
		t.Fatalf("want error for empty table name")
	}
	if _, err := BuildCreateTableSQL(schema.Table{Name: "t"}); err == nil {
		t.Fatalf("want error for table without columns")
	}
}

func TestPgIdentifier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"documents", `"documents"`},
		{"journal-ref", `"journal-ref"`},
		{"public.documents", `"public"."documents"`},
	}
	for _, tc := range cases {
		if got := pgIdentifier(tc.in).Sanitize(); got != tc.want {
			t.Fatalf("pgIdentifier(%q).Sanitize() = %q, want %q", tc.in, got, tc.want)
		}
	}
}
