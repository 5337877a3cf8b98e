// Package service implements the content lifecycle on top of the store:
// slug assignment, status gating, tag sync, file mirroring, and admin auth.
package service

import (
	"time"

	domainerrors "github.com/nyeweb/nyeweb-server/internal/errors"
	"github.com/nyeweb/nyeweb-server/internal/store"
)

// dateFormat is the wire format for article and project dates.
const dateFormat = "2006-01-02"

// parseDate parses an optional YYYY-MM-DD value. Empty defaults to today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour), nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, domainerrors.Validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// mapStoreErr translates store sentinels into domain errors; anything else
// passes through for the boundary to treat as internal.
func mapStoreErr(err error, notFoundMsg string) error {
	switch err {
	case nil:
		return nil
	case store.ErrNotFound:
		return domainerrors.NotFound(notFoundMsg)
	case store.ErrAlreadyExists:
		return domainerrors.Conflict("resource already exists")
	default:
		return err
	}
}
