package testutils

import (
	"fmt"
	"net"
)

// PickUnusedHostPort returns a "localhost:<port>" address nothing is listening
// on, for publishing a container port.
func PickUnusedHostPort() (string, error) {
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return "", fmt.Errorf("failed to pick unused endpoint: %w", err)
	}
	defer listener.Close()
	return listener.Addr().String(), nil
}
