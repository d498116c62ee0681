package bully

import (
	"net"
	"time"

	"github.com/krantius/bully/shared/logging"
)

const sendTimeout = 5 * time.Second

// Sender delivers one message to one peer, best effort. A failed send is
// indistinguishable from a dead peer and the election timeouts cover both,
// so implementations log and swallow their errors.
type Sender interface {
	Send(to ProcessID, kind MessageKind)
}

type tcpSender struct {
	self ProcessID
	dir  *Directory
}

// NewSender returns a Sender that opens one connection per message against
// the addresses in dir.
func NewSender(self ProcessID, dir *Directory) Sender {
	return &tcpSender{self: self, dir: dir}
}

func (s *tcpSender) Send(to ProcessID, kind MessageKind) {
	addr, ok := s.dir.Lookup(to)
	if !ok {
		logging.Warningf("%s dropping %s for unknown peer %s", s.self, kind, to)
		return
	}

	conn, err := net.DialTimeout("tcp", addr.String(), sendTimeout)
	if err != nil {
		logging.Infof("%s could not reach %s at %s: %v", s.self, to, addr, err)
		return
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(sendTimeout))

	msg := Message{Kind: kind, Sender: s.self}
	if err := writeFrame(conn, msg); err != nil {
		logging.Infof("%s failed sending %s to %s: %v", s.self, kind, to, err)
		return
	}

	logging.Infof("%s sent %s to %s", s.self, kind, to)
}

// Listener accepts peer connections for the life of the process, reads one
// message per connection, and deposits it in the mailbox. It never touches
// election state.
type Listener struct {
	ln   net.Listener
	mbox *Mailbox
}

// NewListener binds addr. Pass port 0 for an ephemeral port; Addr reports
// what was actually bound.
func NewListener(addr Addr, mbox *Mailbox) (*Listener, error) {
	ln, err := net.Listen("tcp", addr.String())
	if err != nil {
		return nil, err
	}

	return &Listener{ln: ln, mbox: mbox}, nil
}

// Addr returns the bound listen address.
func (l *Listener) Addr() Addr {
	tcp := l.ln.Addr().(*net.TCPAddr)
	return Addr{Host: tcp.IP.String(), Port: tcp.Port}
}

// Serve accepts until the listener is closed.
func (l *Listener) Serve() {
	logging.Infof("listening on %s", l.Addr())

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			logging.Debugf("accept ending: %v", err)
			return
		}

		go l.handle(conn)
	}
}

// Close stops Serve. In-flight handlers finish on their own.
func (l *Listener) Close() error {
	return l.ln.Close()
}

func (l *Listener) handle(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(sendTimeout))

	var msg Message
	if err := readFrame(conn, &msg); err != nil {
		logging.Warningf("discarding malformed message from %s: %v", conn.RemoteAddr(), err)
		return
	}

	logging.Infof("received %s from %s", msg.Kind, msg.Sender)

	l.mbox.Deposit(msg)
}
