package arxiv

import "testing"

// TestParseRecord_FullLine decodes a realistic metadata line.
func TestParseRecord_FullLine(t *testing.T) {
	t.Parallel()

	line := []byte(`{
		"id": "0704.0001",
		"submitter": "Pavel Nadolsky",
		"authors": "C. Balázs, E. L. Berger",
		"title": "Calculation of prompt diphoton production",
		"comments": "37 pages, 15 figures",
		"journal-ref": "Phys.Rev.D76:013009,2007",
		"doi": "10.1103/PhysRevD.76.013009",
		"report-no": "ANL-HEP-PR-07-12",
		"categories": "hep-ph",
		"license": null,
		"abstract": "A fully differential calculation...",
		"versions": [{"version": "v1", "created": "Sat, 31 Mar 2007"}],
		"update_date": "2008-11-26",
		"authors_parsed": [["Balázs", "C.", ""]]
	}`)

	rec, err := ParseRecord(line)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if rec.ID != "0704.0001" {
		t.Fatalf("id = %q", rec.ID)
	}
	if rec.Categories != "hep-ph" {
		t.Fatalf("categories = %q", rec.Categories)
	}
	if rec.License != nil {
		t.Fatalf("license = %v, want nil for JSON null", *rec.License)
	}
	if rec.JournalRef == nil || *rec.JournalRef != "Phys.Rev.D76:013009,2007" {
		t.Fatalf("journal-ref = %v", rec.JournalRef)
	}
	if rec.UpdateDate != "2008-11-26" {
		t.Fatalf("update_date = %q", rec.UpdateDate)
	}
	if len(rec.Versions) == 0 || len(rec.AuthorsParsed) == 0 {
		t.Fatalf("raw fields not captured: versions=%q authors_parsed=%q", rec.Versions, rec.AuthorsParsed)
	}
}

// TestParseRecord_Rejects covers malformed input and a missing id.
func TestParseRecord_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line string
	}{
		{"not json", "nope"},
		{"missing id", `{"categories":"cs.AI"}`},
		{"empty id", `{"id":"","categories":"cs.AI"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseRecord([]byte(tc.line)); err == nil {
				t.Fatalf("want error for %q", tc.line)
			}
		})
	}
}

// TestDocumentRow_AlignsWithColumns locks the row/column alignment the
// writers depend on.
func TestDocumentRow_AlignsWithColumns(t *testing.T) {
	t.Parallel()

	doi := "10.0/x"
	rec := Record{ID: "1", DOI: &doi, UpdateDate: "2020-01-01", Categories: "cs.AI"}
	cols := DocumentColumns()
	row := rec.DocumentRow()

	if len(cols) != len(row) {
		t.Fatalf("columns = %d, row values = %d", len(cols), len(row))
	}
	byName := map[string]any{}
	for i, c := range cols {
		byName[c] = row[i]
	}
	if byName["id"] != "1" {
		t.Fatalf("id value = %v", byName["id"])
	}
	if got := byName["doi"].(*string); got == nil || *got != doi {
		t.Fatalf("doi value = %v", got)
	}
	if byName["update_date"] != "2020-01-01" {
		t.Fatalf("update_date value = %v", byName["update_date"])
	}
	if _, has := byName["categories"]; has {
		t.Fatalf("categories must not be a document column")
	}
}
