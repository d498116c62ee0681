package bully

import "fmt"

// ProcessID identifies a peer and doubles as its election priority.
// Comparison is lexicographic: Priority first, Tiebreaker second.
type ProcessID struct {
	Priority   int `json:"priority"`
	Tiebreaker int `json:"tiebreaker"`
}

// After reports whether p outranks o in an election.
func (p ProcessID) After(o ProcessID) bool {
	if p.Priority != o.Priority {
		return p.Priority > o.Priority
	}
	return p.Tiebreaker > o.Tiebreaker
}

func (p ProcessID) String() string {
	return fmt.Sprintf("(%d,%d)", p.Priority, p.Tiebreaker)
}

type MessageKind string

const (
	Election    MessageKind = "ELECTION"
	OK          MessageKind = "OK"
	Coordinator MessageKind = "COORDINATOR"
)

// Message is the whole peer-to-peer protocol: a kind and who sent it.
type Message struct {
	Kind   MessageKind `json:"kind"`
	Sender ProcessID   `json:"sender"`
}

type State string

const (
	Idle      State = "idle"
	Electing  State = "electing"
	Leading   State = "leader"
	Following State = "follower"
)
