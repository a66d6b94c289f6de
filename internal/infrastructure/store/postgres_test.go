package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ddlColumns extracts the column names a CREATE TABLE statement defines.
func ddlColumns(t *testing.T, table string) map[string]bool {
	t.Helper()
	prefix := "CREATE TABLE IF NOT EXISTS " + table + " ("
	for _, stmt := range schemaStatements {
		if !strings.HasPrefix(stmt, prefix) {
			continue
		}
		columns := make(map[string]bool)
		lines := strings.Split(stmt, "\n")
		for _, line := range lines[1 : len(lines)-1] {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			name := fields[0]
			// Skip table-level constraint lines.
			if name == strings.ToUpper(name) {
				continue
			}
			columns[name] = true
		}
		return columns
	}
	t.Fatalf("no CREATE TABLE statement for %q", table)
	return nil
}

// The stores build INSERT/SELECT statements from these column lists; a name
// that drifts from the DDL fails every query on an EnsureSchema-created
// database, which no mock-backed test would catch.
func TestQueryColumnsMatchSchema(t *testing.T) {
	tests := []struct {
		table   string
		columns string
	}{
		{"users", userColumns},
		{"products", productColumns},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			defined := ddlColumns(t, tt.table)
			require.NotEmpty(t, defined)
			for _, col := range strings.Split(tt.columns, ",") {
				col = strings.TrimSpace(col)
				assert.True(t, defined[col], "store queries column %q which the %s DDL does not define", col, tt.table)
			}
		})
	}
}
