package bully

// Mailbox hands messages from the listener's connection handlers to the
// election loop. Handlers only ever Deposit; the loop is the single
// consumer. A buffered channel replaces the wait/clear/set gate you would
// otherwise need around a shared slice: Deposit blocks when the buffer is
// full instead of dropping, and DrainAll takes whatever is queued right now
// without waiting for more.
type Mailbox struct {
	ch chan Message
}

// NewMailbox creates a mailbox holding up to size messages. Size <= 0 gets
// the default.
func NewMailbox(size int) *Mailbox {
	if size <= 0 {
		size = defaultMailboxSize
	}

	return &Mailbox{ch: make(chan Message, size)}
}

func (m *Mailbox) Deposit(msg Message) {
	m.ch <- msg
}

// DrainAll empties the mailbox and reports whether it got anything.
// Each deposited message is observed by exactly one drain.
func (m *Mailbox) DrainAll() ([]Message, bool) {
	var out []Message

	for {
		select {
		case msg := <-m.ch:
			out = append(out, msg)
		default:
			return out, len(out) > 0
		}
	}
}
