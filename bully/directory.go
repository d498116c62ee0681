package bully

import (
	"net"
	"sort"
	"strconv"
)

// Addr is where a peer's listener lives.
type Addr struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func (a Addr) String() string {
	return joinHostPort(a.Host, a.Port)
}

// Directory is the membership snapshot handed back by the registry.
// It is built once at startup and never mutated after that, so reads
// need no locking.
type Directory struct {
	members map[ProcessID]Addr
}

func NewDirectory(members map[ProcessID]Addr) *Directory {
	copied := make(map[ProcessID]Addr, len(members))
	for id, addr := range members {
		copied[id] = addr
	}

	return &Directory{members: copied}
}

// Lookup returns the address recorded for id.
func (d *Directory) Lookup(id ProcessID) (Addr, bool) {
	addr, ok := d.members[id]
	return addr, ok
}

func (d *Directory) Len() int {
	return len(d.members)
}

// Higher returns every member that outranks id, lowest first.
func (d *Directory) Higher(id ProcessID) []ProcessID {
	var out []ProcessID
	for member := range d.members {
		if member.After(id) {
			out = append(out, member)
		}
	}

	sortIDs(out)

	return out
}

// Others returns every member except id, lowest first.
func (d *Directory) Others(id ProcessID) []ProcessID {
	var out []ProcessID
	for member := range d.members {
		if member != id {
			out = append(out, member)
		}
	}

	sortIDs(out)

	return out
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func sortIDs(ids []ProcessID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[j].After(ids[i])
	})
}
