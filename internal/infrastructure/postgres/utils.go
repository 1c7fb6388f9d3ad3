package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier lo implementan *pgxpool.Pool, pgx.Tx y el mock de pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// setClause acumula "col = $n" para los UPDATE parciales.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

// addIf agrega la columna solo si el campo del patch viene informado.
func addIf[T any](s *setClause, col string, v *T) {
	if v != nil {
		s.add(col, *v)
	}
}

// updateSQL arma UPDATE ... SET ... WHERE id AND user_id RETURNING.
// Deja id y ownerID como los dos últimos argumentos.
func (s *setClause) updateSQL(table, returning, id, ownerID string) (string, []any) {
	args := append(s.args, id, ownerID)
	n := len(args)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		table, strings.Join(s.cols, ", "), n-1, n, returning)
	return query, args
}
