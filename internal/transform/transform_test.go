package transform

import (
	"reflect"
	"testing"

	"arxivetl/internal/arxiv"
)

func rec(id, categories string) arxiv.Record {
	return arxiv.Record{ID: id, Categories: categories, UpdateDate: "2020-01-01"}
}

// TestApply_SplitsCategories verifies one child row per whitespace-separated
// tag, with sequential surrogate ids in input order.
func TestApply_SplitsCategories(t *testing.T) {
	t.Parallel()

	batch := []arxiv.Record{
		rec("1", "cs.AI cs.LG"),
		rec("2", "math.CO"),
	}
	res := Apply(batch, map[string]struct{}{}, 1)

	wantCats := [][]any{
		{int64(1), "1", "cs.AI"},
		{int64(2), "1", "cs.LG"},
		{int64(3), "2", "math.CO"},
	}
	if !reflect.DeepEqual(res.Categories, wantCats) {
		t.Fatalf("categories = %v, want %v", res.Categories, wantCats)
	}
	if res.NextCategoryID != 4 {
		t.Fatalf("next surrogate id = %d, want 4", res.NextCategoryID)
	}
	if len(res.Documents) != 2 {
		t.Fatalf("documents = %d rows, want 2", len(res.Documents))
	}
	if got := res.NewIDs; !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("new ids = %v, want [1 2]", got)
	}
}

// TestApply_CategoryCountMatchesSplit checks the invariant
// len(categories) == sum over survivors of their whitespace-split tag count.
func TestApply_CategoryCountMatchesSplit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		batch []arxiv.Record
		want  int
	}{
		{"single tag each", []arxiv.Record{rec("a", "cs.AI"), rec("b", "cs.DB")}, 2},
		{"multi tag", []arxiv.Record{rec("a", "cs.AI cs.LG stat.ML")}, 3},
		{"extra whitespace", []arxiv.Record{rec("a", "  cs.AI\tcs.LG  ")}, 2},
		{"empty categories", []arxiv.Record{rec("a", "")}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Apply(tc.batch, map[string]struct{}{}, 1)
			if len(res.Categories) != tc.want {
				t.Fatalf("category rows = %d, want %d", len(res.Categories), tc.want)
			}
			if got := res.NextCategoryID - 1; got != int64(tc.want) {
				t.Fatalf("offset advanced by %d, want %d", got, tc.want)
			}
		})
	}
}

// TestApply_DropsSeenIDs verifies records whose id was seen in an earlier
// batch are dropped without consuming surrogate ids.
func TestApply_DropsSeenIDs(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{"1": {}}
	res := Apply([]arxiv.Record{rec("1", "cs.AI"), rec("2", "cs.DB")}, seen, 5)

	if len(res.Documents) != 1 {
		t.Fatalf("documents = %d rows, want 1", len(res.Documents))
	}
	if !reflect.DeepEqual(res.NewIDs, []string{"2"}) {
		t.Fatalf("new ids = %v, want [2]", res.NewIDs)
	}
	wantCats := [][]any{{int64(5), "2", "cs.DB"}}
	if !reflect.DeepEqual(res.Categories, wantCats) {
		t.Fatalf("categories = %v, want %v", res.Categories, wantCats)
	}
	if len(seen) != 1 {
		t.Fatalf("seen set mutated: %v", seen)
	}
}

// TestApply_DropsRepeatsWithinBatch guards against an id appearing twice in
// the same chunk; only the first occurrence survives.
func TestApply_DropsRepeatsWithinBatch(t *testing.T) {
	t.Parallel()

	res := Apply([]arxiv.Record{rec("1", "cs.AI"), rec("1", "cs.LG")}, map[string]struct{}{}, 1)
	if len(res.Documents) != 1 {
		t.Fatalf("documents = %d rows, want 1", len(res.Documents))
	}
	if len(res.Categories) != 1 || res.Categories[0][2] != "cs.AI" {
		t.Fatalf("categories = %v, want the first record's tag only", res.Categories)
	}
}

// TestApply_EmptySurvivors checks an all-duplicate batch yields empty
// outputs and an unchanged offset.
func TestApply_EmptySurvivors(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{"1": {}, "2": {}}
	res := Apply([]arxiv.Record{rec("1", "cs.AI"), rec("2", "cs.DB")}, seen, 42)

	if len(res.Documents) != 0 || len(res.Categories) != 0 || len(res.NewIDs) != 0 {
		t.Fatalf("want empty result, got %+v", res)
	}
	if res.NextCategoryID != 42 {
		t.Fatalf("offset = %d, want unchanged 42", res.NextCategoryID)
	}
}

// TestApply_DocumentRowShape verifies document rows align with
// DocumentColumns and exclude the categories field.
func TestApply_DocumentRowShape(t *testing.T) {
	t.Parallel()

	title := "A"
	in := arxiv.Record{ID: "1", Title: &title, Categories: "cs.AI", UpdateDate: "2020-06-01"}
	res := Apply([]arxiv.Record{in}, map[string]struct{}{}, 1)

	cols := arxiv.DocumentColumns()
	row := res.Documents[0]
	if len(row) != len(cols) {
		t.Fatalf("row has %d values, columns are %d", len(row), len(cols))
	}
	if row[0] != "1" {
		t.Fatalf("row[0] = %v, want id", row[0])
	}
	for i, c := range cols {
		if c == "update_date" && row[i] != "2020-06-01" {
			t.Fatalf("update_date = %v", row[i])
		}
	}
	for _, v := range row {
		if s, ok := v.(string); ok && s == "cs.AI" {
			t.Fatalf("categories leaked into document row: %v", row)
		}
	}
}

// TestApply_SurrogateIDsAcrossBatches simulates the driver loop: ids keep
// increasing across batch boundaries with no reuse.
func TestApply_SurrogateIDsAcrossBatches(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	next := int64(1)
	var ids []int64

	for _, batch := range [][]arxiv.Record{
		{rec("1", "cs.AI cs.LG")},
		{rec("2", "math.CO"), rec("1", "cs.AI")}, // "1" duplicates batch 1
		{rec("3", "hep-th gr-qc")},
	} {
		res := Apply(batch, seen, next)
		for _, row := range res.Categories {
			ids = append(ids, row[0].(int64))
		}
		for _, id := range res.NewIDs {
			seen[id] = struct{}{}
		}
		next = res.NextCategoryID
	}

	want := []int64{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("surrogate ids = %v, want %v", ids, want)
	}
}
