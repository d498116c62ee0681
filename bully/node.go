package bully

import (
	"context"
	"sync"
	"time"

	"github.com/krantius/bully/shared/logging"
)

const (
	// How long a candidate waits after broadcasting ELECTION before
	// concluding no higher peer is alive.
	defaultWindow = 5 * time.Second

	// How often the election loop drains the mailbox.
	defaultPoll = 1 * time.Second

	defaultMailboxSize = 64
)

// Config contains the settings needed to start a bully node.
type Config struct {
	ID     ProcessID
	Window time.Duration
	Poll   time.Duration
}

// Node is one participant in the election. All election state lives here
// and is only ever touched from the Run goroutine; other goroutines read
// through Status, which serves a published copy.
type Node struct {
	id  ProcessID
	dir *Directory

	mbox *Mailbox
	out  Sender

	state    State
	leader   *ProcessID
	okSeen   bool
	window   time.Duration
	poll     time.Duration
	deadline time.Time

	trigger chan struct{}

	pubMu sync.Mutex
	pub   Status
}

// Status is a point-in-time snapshot of a node's election state.
type Status struct {
	ID     ProcessID  `json:"id"`
	State  State      `json:"state"`
	Leader *ProcessID `json:"leader,omitempty"`
}

// New creates a node over an already populated directory. The mailbox is
// the one the transport listener deposits into.
func New(cfg Config, dir *Directory, mbox *Mailbox, out Sender) *Node {
	if cfg.Window == 0 {
		cfg.Window = defaultWindow
	}
	if cfg.Poll == 0 {
		cfg.Poll = defaultPoll
	}

	n := &Node{
		id:      cfg.ID,
		dir:     dir,
		mbox:    mbox,
		out:     out,
		state:   Idle,
		window:  cfg.Window,
		poll:    cfg.Poll,
		trigger: make(chan struct{}, 1),
	}

	n.publish()

	return n
}

// Run starts an election and then polls until ctx is cancelled.
func (n *Node) Run(ctx context.Context) {
	n.startElection()

	ticker := time.NewTicker(n.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Infof("%s exiting", n.id)
			return
		case <-n.trigger:
			n.startElection()
		case <-ticker.C:
			n.step(time.Now())
		}
	}
}

// StartElection asks the running node to start a fresh election. Safe to
// call from any goroutine; a no-op if a trigger is already pending.
func (n *Node) StartElection() {
	select {
	case n.trigger <- struct{}{}:
	default:
	}
}

// Status returns the last published snapshot.
func (n *Node) Status() Status {
	n.pubMu.Lock()
	defer n.pubMu.Unlock()

	return n.pub
}

// Leader returns the current leader, if one has been decided.
func (n *Node) Leader() (ProcessID, bool) {
	s := n.Status()
	if s.Leader == nil {
		return ProcessID{}, false
	}

	return *s.Leader, true
}

// step drains the mailbox, reacts to each message, then checks whether the
// waiting window has run out.
func (n *Node) step(now time.Time) {
	if msgs, ok := n.mbox.DrainAll(); ok {
		for _, msg := range msgs {
			n.dispatch(msg)
		}
	}

	if n.state == Electing && now.After(n.deadline) {
		if n.leader == nil && !n.okSeen {
			n.becomeLeader()
		}
		// An OK arrived: a higher peer is alive and its COORDINATOR is
		// coming, so stay in electing and keep polling.
	}

	n.publish()
}

func (n *Node) publish() {
	s := Status{ID: n.id, State: n.state}
	if n.leader != nil {
		leader := *n.leader
		s.Leader = &leader
	}

	n.pubMu.Lock()
	n.pub = s
	n.pubMu.Unlock()
}
