package storage

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when no article row matches the requested ID.
var ErrNotFound = errors.New("storage: not found")

// ErrInvalidField is returned when a field name outside the allowed set
// reaches the field resolver. No query is issued in that case.
var ErrInvalidField = errors.New("storage: invalid field")

// ErrUnavailable is returned when the database cannot be reached at all:
// dial failures, rejected credentials, or a server that is shutting down.
var ErrUnavailable = errors.New("storage: database unavailable")

// wrap classifies a pgx error into the storage taxonomy. No-rows becomes
// ErrNotFound; connection-level failures become ErrUnavailable; everything
// else is wrapped with the operation name for the server log.
func wrap(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case isUnavailable(err):
		return fmt.Errorf("storage: %s: %w", op, ErrUnavailable)
	}
	return fmt.Errorf("storage: %s: %w", op, err)
}

func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "08000", "08003", "08006": // connection_exception family
			return true
		case "57P01", "57P02", "57P03": // admin_shutdown, crash_shutdown, cannot_connect_now
			return true
		case "28000", "28P01": // invalid_authorization_specification, invalid_password
			return true
		}
	}
	return false
}
