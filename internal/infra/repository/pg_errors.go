package repository

import (
	"errors"

	"escape-rooms-backend/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeLockNotAvailable    = "55P03"
)

// classifyWriteErr maps Postgres error codes onto repository error
// kinds so the usecase layer never inspects SQLSTATE itself.
func classifyWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		case pgErrCodeLockNotAvailable:
			return infra.WrapRepoErr(msg, err, infra.KindLockTimeout)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
