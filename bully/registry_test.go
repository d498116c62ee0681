package bully

import (
	"errors"
	"net"
	"testing"
)

// fakeRegistry accepts one connection, records the registration it reads,
// and replies with the given membership.
func fakeRegistry(t *testing.T, members []memberEntry) (string, chan registration) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	t.Cleanup(func() { ln.Close() })

	got := make(chan registration, 1)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var req registration
		if err := readFrame(conn, &req); err != nil {
			return
		}

		got <- req

		writeFrame(conn, members)
	}()

	return ln.Addr().String(), got
}

func TestRegister(t *testing.T) {
	members := []memberEntry{
		{ID: idA, Host: "127.0.0.1", Port: 1},
		{ID: idB, Host: "127.0.0.1", Port: 2},
		{ID: idC, Host: "127.0.0.1", Port: 3},
	}

	addr, got := fakeRegistry(t, members)

	dir, err := Register(addr, idB, Addr{Host: "127.0.0.1", Port: 2})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	req := <-got
	if req.ID != idB || req.Port != 2 {
		t.Errorf("unexpected registration %+v", req)
	}

	if dir.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", dir.Len())
	}

	a, ok := dir.Lookup(idA)
	if !ok || a.Port != 1 {
		t.Errorf("expected idA at port 1, got %+v ok=%v", a, ok)
	}
}

func TestRegisterRefused(t *testing.T) {
	// Grab a port and close it so the dial is refused.
	probe, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	addr := probe.Addr().String()
	probe.Close()

	_, err = Register(addr, idA, Addr{Host: "127.0.0.1", Port: 1})
	if err == nil {
		t.Fatal("expected registration to fail")
	}

	var regErr *RegistrationError
	if !errors.As(err, &regErr) {
		t.Errorf("expected a RegistrationError, got %T", err)
	}
}

func TestRegisterMalformedResponse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var req registration
		readFrame(conn, &req)

		conn.Write([]byte{0x00, 0x00, 0x00, 0x03, 'w', 'a', 't'})
	}()

	_, err = Register(ln.Addr().String(), idA, Addr{Host: "127.0.0.1", Port: 1})

	var regErr *RegistrationError
	if !errors.As(err, &regErr) {
		t.Fatalf("expected a RegistrationError, got %v", err)
	}
}
