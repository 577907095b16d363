package transport

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	// ErrNotConnected indicates a Send on a closed or never-opened
	// connection.
	ErrNotConnected = errors.New("not connected")
	// ErrConnectTimeout indicates the gateway did not accept the
	// connection within the dial timeout. Never retried here.
	ErrConnectTimeout = errors.New("connect timeout")
	// ErrConnectRefused indicates the gateway actively refused the
	// connection.
	ErrConnectRefused = errors.New("connection refused")
)

// mapDialError folds net-level dial failures into the package taxonomy.
func mapDialError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrConnectTimeout, err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w: %v", ErrConnectRefused, err)
	}
	return err
}
