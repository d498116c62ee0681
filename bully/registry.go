package bully

import (
	"fmt"
	"net"
	"time"

	"github.com/krantius/bully/shared/logging"
)

const registryTimeout = 5 * time.Second

// RegistrationError means the registry could not be reached or gave back
// garbage. There is no membership view without the registry, so this is
// fatal to the caller.
type RegistrationError struct {
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

type registration struct {
	ID   ProcessID `json:"id"`
	Host string    `json:"host"`
	Port int       `json:"port"`
}

type memberEntry struct {
	ID   ProcessID `json:"id"`
	Host string    `json:"host"`
	Port int       `json:"port"`
}

// Register announces id and its listener address to the registry at addr
// and returns the full membership snapshot. One connection, one request,
// one response. No retries: if this fails the process cannot start.
func Register(addr string, id ProcessID, listen Addr) (*Directory, error) {
	logging.Infof("%s registering with %s as %s", id, addr, listen)

	conn, err := net.DialTimeout("tcp", addr, registryTimeout)
	if err != nil {
		return nil, &RegistrationError{Err: err}
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(registryTimeout))

	req := registration{
		ID:   id,
		Host: listen.Host,
		Port: listen.Port,
	}

	if err := writeFrame(conn, req); err != nil {
		return nil, &RegistrationError{Err: err}
	}

	var entries []memberEntry
	if err := readFrame(conn, &entries); err != nil {
		return nil, &RegistrationError{Err: err}
	}

	members := make(map[ProcessID]Addr, len(entries))
	for _, e := range entries {
		members[e.ID] = Addr{Host: e.Host, Port: e.Port}
	}

	logging.Infof("%s registered, %d members known", id, len(members))

	return NewDirectory(members), nil
}
