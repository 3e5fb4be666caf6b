// Package arxiv defines the record model for one line of the arXiv metadata
// dump (NDJSON, one object per paper) and the column layouts used by the
// destination tables.
package arxiv

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Record is a single decoded line of the metadata dump. Free-text fields are
// pointers so that JSON null survives as SQL NULL instead of an empty string.
//
// Versions and AuthorsParsed are decoded but not loaded; they are kept as raw
// JSON so a future revision can model them without reshaping this struct.
type Record struct {
	ID            string          `json:"id"`
	Submitter     *string         `json:"submitter"`
	Authors       *string         `json:"authors"`
	Title         *string         `json:"title"`
	Comments      *string         `json:"comments"`
	JournalRef    *string         `json:"journal-ref"`
	DOI           *string         `json:"doi"`
	ReportNo      *string         `json:"report-no"`
	Categories    string          `json:"categories"`
	License       *string         `json:"license"`
	Abstract      *string         `json:"abstract"`
	UpdateDate    string          `json:"update_date"`
	Versions      json.RawMessage `json:"versions"`
	AuthorsParsed json.RawMessage `json:"authors_parsed"`
}

// ParseRecord decodes one NDJSON line. A record without an id is rejected:
// id is the documents primary key and every downstream step keys on it.
func ParseRecord(line []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	if rec.ID == "" {
		return Record{}, fmt.Errorf("record missing id")
	}
	return rec, nil
}

// DocumentColumns is the ordered column list of the documents table. The
// order matches DocumentRow and the schema definition.
func DocumentColumns() []string {
	return []string{
		"id",
		"authors",
		"submitter",
		"title",
		"comments",
		"journal-ref",
		"doi",
		"report-no",
		"license",
		"abstract",
		"update_date",
	}
}

// CategoryColumns is the ordered column list of the categories table.
func CategoryColumns() []string {
	return []string{"id", "arxiv_id", "category"}
}

// DocumentRow converts the record into a row aligned with DocumentColumns.
// The categories, versions and authors_parsed fields are intentionally
// absent: categories land in their own table, the other two are not modeled.
func (r Record) DocumentRow() []any {
	return []any{
		r.ID,
		r.Authors,
		r.Submitter,
		r.Title,
		r.Comments,
		r.JournalRef,
		r.DOI,
		r.ReportNo,
		r.License,
		r.Abstract,
		r.UpdateDate,
	}
}
