/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package wellknown

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dirpx.dev/problem/mapper"
	"dirpx.dev/problem/status"
)

// Postgres maps pgx.ErrNoRows to 404 and classifies *pgconn.PgError by its
// SQLSTATE (see PgStatus).
func Postgres() mapper.Option {
	return mapper.Bundle(
		mapper.MapSentinel(pgx.ErrNoRows,
			mapper.DefaultStatus(http.StatusNotFound),
			mapper.DefaultTitle("Not Found"),
			mapper.DetailFrom(fixed("The requested record does not exist.")),
		),
		mapper.MapException[*pgconn.PgError](
			mapper.StatusFrom(PgStatus),
			mapper.TitleFrom(pgTitle),
			mapper.DetailFrom(pgDetail),
		),
	)
}

// PgStatus returns the HTTP status matching the SQLSTATE of a *pgconn.PgError
// in the chain, or 0 when there is none.
//
//	unique / exclusion / foreign key violation   409
//	serialization failure, deadlock              409
//	not-null / check violation, data exception   400
//	insufficient privilege                       403
//	query canceled                               504
//	connection exception, resources exhausted    503
//	anything else                                500
func PgStatus(err error) int {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return 0
	}
	switch c := pg.Code; {
	case c == pgerrcode.UniqueViolation, c == pgerrcode.ExclusionViolation, c == pgerrcode.ForeignKeyViolation:
		return http.StatusConflict
	case c == pgerrcode.SerializationFailure, c == pgerrcode.DeadlockDetected:
		return http.StatusConflict
	case c == pgerrcode.NotNullViolation, c == pgerrcode.CheckViolation, pgerrcode.IsDataException(c):
		return http.StatusBadRequest
	case c == pgerrcode.InsufficientPrivilege:
		return http.StatusForbidden
	case c == pgerrcode.QueryCanceled:
		return http.StatusGatewayTimeout
	case pgerrcode.IsConnectionException(c), pgerrcode.IsInsufficientResources(c):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func pgTitle(err error) string {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return ""
	}
	switch c := pg.Code; {
	case c == pgerrcode.UniqueViolation, c == pgerrcode.ExclusionViolation:
		return "Duplicate Value"
	case c == pgerrcode.ForeignKeyViolation:
		return "Missing Reference"
	case c == pgerrcode.SerializationFailure, c == pgerrcode.DeadlockDetected:
		return "Concurrent Update"
	case c == pgerrcode.NotNullViolation:
		return "Missing Value"
	case c == pgerrcode.CheckViolation, pgerrcode.IsDataException(c):
		return "Invalid Value"
	}
	return status.Name(PgStatus(err))
}

// pgDetail names the violated constraint when there is one. The server
// message is never exposed.
func pgDetail(err error) string {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return ""
	}
	if pg.ConstraintName != "" {
		return "Constraint " + pg.ConstraintName + " was violated."
	}
	return "The database rejected the operation."
}
