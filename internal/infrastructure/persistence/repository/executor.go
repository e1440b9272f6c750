package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/facultyops/renewal-workflow/internal/infrastructure/persistence/sqlite"
)

// executor interface covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// getExecutor returns the transaction from the context when one is
// active, otherwise the plain database handle.
func getExecutor(ctx context.Context, db *sql.DB) executor {
	if tx := sqlite.TxFrom(ctx); tx != nil {
		return tx
	}
	return db
}

// prefixColumns qualifies each column in a comma separated list with a
// table alias, for queries that join.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
