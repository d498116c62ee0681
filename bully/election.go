package bully

import (
	"time"

	"github.com/krantius/bully/shared/logging"
)

// startElection challenges every higher peer and arms the waiting window.
// If nobody answers before it expires, this node takes over.
func (n *Node) startElection() {
	n.state = Electing
	n.leader = nil
	n.okSeen = false
	n.deadline = time.Now().Add(n.window)

	logging.Infof("%s starting election", n.id)

	for _, peer := range n.dir.Higher(n.id) {
		n.out.Send(peer, Election)
	}

	n.publish()
}

func (n *Node) dispatch(msg Message) {
	if _, known := n.dir.Lookup(msg.Sender); !known {
		logging.Warningf("%s ignoring %s from unknown sender %s", n.id, msg.Kind, msg.Sender)
		return
	}

	switch msg.Kind {
	case Election:
		n.handleElection(msg.Sender)
	case OK:
		n.handleOK(msg.Sender)
	case Coordinator:
		n.handleCoordinator(msg.Sender)
	default:
		logging.Warningf("%s ignoring unknown message kind %q from %s", n.id, msg.Kind, msg.Sender)
	}
}

// handleElection answers a challenge from a lower peer. A challenge from a
// higher peer needs no reply: someone above us, possibly us via our own
// election, will answer it.
func (n *Node) handleElection(from ProcessID) {
	if !n.id.After(from) {
		logging.Debugf("%s not answering ELECTION from higher peer %s", n.id, from)
		return
	}

	n.out.Send(from, OK)
	n.startElection()
}

// handleOK records that a higher peer is alive, which takes self-declaration
// off the table for this round. The window is not extended; the higher
// peer's COORDINATOR arrives through the mailbox like any other message.
func (n *Node) handleOK(from ProcessID) {
	if n.state != Electing {
		logging.Debugf("%s ignoring OK from %s outside an election", n.id, from)
		return
	}

	logging.Infof("%s standing down, %s is alive", n.id, from)

	n.okSeen = true
}

// handleCoordinator adopts the announced leader no matter what state we are
// in. The announcement always wins: the protocol only sends it after every
// OK has settled.
func (n *Node) handleCoordinator(from ProcessID) {
	leader := from
	n.leader = &leader
	n.state = Following
	n.okSeen = false

	logging.Infof("%s following leader %s", n.id, from)

	n.publish()
}

func (n *Node) becomeLeader() {
	self := n.id
	n.leader = &self
	n.state = Leading

	logging.Infof("%s won the election, announcing to the group", n.id)

	for _, peer := range n.dir.Others(n.id) {
		n.out.Send(peer, Coordinator)
	}

	n.publish()
}
