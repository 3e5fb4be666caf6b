// Package schema holds the backend-agnostic definitions of the two
// destination tables. Column types are generic kinds; each storage backend
// maps them onto its own SQL dialect when rendering DDL.
package schema

// TypeKind is a database-agnostic column type.
type TypeKind string

const (
	TypeText    TypeKind = "text"
	TypeInteger TypeKind = "integer"
	TypeDate    TypeKind = "date"
)

// Column describes a single column of a destination table.
type Column struct {
	Name       string
	Type       TypeKind
	NotNull    bool
	PrimaryKey bool
}

// ForeignKey describes a single-column foreign key constraint.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table is an ordered column list plus constraints for one destination table.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Documents returns the definition of the documents table: one row per
// unique arXiv id, all free-text fields nullable.
func Documents() Table {
	return Table{
		Name: "documents",
		Columns: []Column{
			{Name: "id", Type: TypeText, NotNull: true, PrimaryKey: true},
			{Name: "authors", Type: TypeText},
			{Name: "submitter", Type: TypeText},
			{Name: "title", Type: TypeText},
			{Name: "comments", Type: TypeText},
			{Name: "journal-ref", Type: TypeText},
			{Name: "doi", Type: TypeText},
			{Name: "report-no", Type: TypeText},
			{Name: "license", Type: TypeText},
			{Name: "abstract", Type: TypeText},
			{Name: "update_date", Type: TypeDate},
		},
	}
}

// Categories returns the definition of the categories table: one row per
// (document, category tag) pair, keyed by a loader-assigned surrogate id.
func Categories() Table {
	return Table{
		Name: "categories",
		Columns: []Column{
			{Name: "id", Type: TypeInteger, NotNull: true, PrimaryKey: true},
			{Name: "arxiv_id", Type: TypeText, NotNull: true},
			{Name: "category", Type: TypeText, NotNull: true},
		},
		ForeignKeys: []ForeignKey{
			{Column: "arxiv_id", RefTable: "documents", RefColumn: "id"},
		},
	}
}

// Tables returns all destination tables in creation order: documents first,
// since categories references it.
func Tables() []Table {
	return []Table{Documents(), Categories()}
}
