package core

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

var (
	NoRecordFound       = xerrors.Message("No record found")
	ErrInvalidInput     = xerrors.Message("Invalid input")
	ErrInvalidQuery     = xerrors.Message("Invalid query")
	ErrMissingField     = xerrors.Message("Missing required field")
	ErrInvalidImageType = xerrors.Message("Invalid image type")
	ErrUnknownUser      = xerrors.Message("Unknown user")
	ErrAlreadyExists    = xerrors.Message("Already exists")
)

// Postgres error codes translated at this boundary. Anything else propagates
// unclassified and surfaces as an internal error.
const (
	pqInvalidTextRepresentation = "22P02"
	pqNotNullViolation          = "23502"
	pqForeignKeyViolation       = "23503"
	pqUniqueViolation           = "23505"
)

// classifyError translates store-raised failures into the domain taxonomy.
// It is the single place where driver errors are inspected.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqInvalidTextRepresentation:
			return xerrors.New(ErrInvalidInput)
		case pqNotNullViolation:
			return xerrors.New(ErrMissingField)
		case pqForeignKeyViolation:
			// A reference to a missing user is distinguished from a missing
			// article or topic by the violated constraint name.
			if strings.Contains(pqErr.Constraint, "author") {
				return xerrors.New(ErrUnknownUser)
			}
			return xerrors.New(NoRecordFound)
		case pqUniqueViolation:
			return xerrors.New(ErrAlreadyExists)
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return xerrors.New(NoRecordFound)
	}

	return xerrors.New(err)
}
