package postgres

import (
	"fmt"
	"strings"

	"arxivetl/internal/schema"
)

// sqlType maps a generic column type onto the Postgres type used in DDL.
func sqlType(t schema.TypeKind) string {
	switch t {
	case schema.TypeInteger:
		return "BIGINT"
	case schema.TypeDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL renders an idempotent CREATE TABLE statement for the
// given table definition in Postgres dialect.
func BuildCreateTableSQL(t schema.Table) (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", fmt.Errorf("postgres ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: table %s has no columns", t.Name)
	}

	defs := make([]string, 0, len(t.Columns)+1+len(t.ForeignKeys))
	pks := make([]string, 0, 1)

	for _, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return "", fmt.Errorf("postgres ddl: column with empty name in table %s", t.Name)
		}
		var sb strings.Builder
		sb.WriteString(pgIdentifier(c.Name).Sanitize())
		sb.WriteByte(' ')
		sb.WriteString(sqlType(c.Type))
		if c.NotNull {
			sb.WriteString(" NOT NULL")
		}
		defs = append(defs, sb.String())

		if c.PrimaryKey {
			pks = append(pks, pgIdentifier(c.Name).Sanitize())
		}
	}

	if len(pks) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	for _, fk := range t.ForeignKeys {
		defs = append(defs, fmt.Sprintf(
			"FOREIGN KEY (%s) REFERENCES %s (%s)",
			pgIdentifier(fk.Column).Sanitize(),
			pgIdentifier(fk.RefTable).Sanitize(),
			pgIdentifier(fk.RefColumn).Sanitize(),
		))
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		pgIdentifier(t.Name).Sanitize(),
		strings.Join(defs, ",\n  "),
	), nil
}
