package errs

import (
	"errors"
	"net/http"
)

var statusTable = []struct {
	err  error
	code int
}{
	{ErrValidation, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrNotFound, http.StatusNotFound},
	{ErrConflict, http.StatusConflict},
	{ErrStore, http.StatusInternalServerError},
}

// HTTPStatus maps a taxonomy member to its status code. Anything outside the
// taxonomy is a 500.
func HTTPStatus(err error) int {
	for _, row := range statusTable {
		if errors.Is(err, row.err) {
			return row.code
		}
	}
	return http.StatusInternalServerError
}
