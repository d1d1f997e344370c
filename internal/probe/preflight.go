package probe

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/net/icmp"
)

// CheckSocket opens and immediately closes an ICMPv4 socket of the requested
// kind. It returns a KindPermissionDenied error when the host refuses.
func CheckSocket(privileged bool) error {
	network := "udp4"
	if privileged {
		network = "ip4:icmp"
	}
	conn, err := icmp.ListenPacket(network, "0.0.0.0")
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return &Error{Kind: KindPermissionDenied, Detail: err.Error(), Err: err}
		}
		return fmt.Errorf("open %s socket: %w", network, err)
	}
	return conn.Close()
}
