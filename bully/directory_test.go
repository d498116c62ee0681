package bully

import (
	"reflect"
	"testing"
)

func TestProcessIDOrdering(t *testing.T) {
	cases := []struct {
		name     string
		p, o     ProcessID
		expected bool
	}{
		{
			name:     "higher priority wins",
			p:        ProcessID{Priority: 6, Tiebreaker: 1},
			o:        ProcessID{Priority: 5, Tiebreaker: 999},
			expected: true,
		},
		{
			name:     "tiebreaker decides equal priority",
			p:        ProcessID{Priority: 5, Tiebreaker: 300},
			o:        ProcessID{Priority: 5, Tiebreaker: 200},
			expected: true,
		},
		{
			name:     "equal ids do not outrank each other",
			p:        ProcessID{Priority: 5, Tiebreaker: 100},
			o:        ProcessID{Priority: 5, Tiebreaker: 100},
			expected: false,
		},
		{
			name:     "lower loses",
			p:        ProcessID{Priority: 5, Tiebreaker: 100},
			o:        ProcessID{Priority: 5, Tiebreaker: 200},
			expected: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.p.After(c.o); got != c.expected {
				t.Errorf("%s.After(%s): expected %v, got %v", c.p, c.o, c.expected, got)
			}
		})
	}
}

func TestDirectoryHigher(t *testing.T) {
	dir := testDirectory()

	cases := []struct {
		name     string
		id       ProcessID
		expected []ProcessID
	}{
		{
			name:     "lowest sees both above, in order",
			id:       idA,
			expected: []ProcessID{idB, idC},
		},
		{
			name:     "highest sees nobody",
			id:       idC,
			expected: nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := dir.Higher(c.id); !reflect.DeepEqual(got, c.expected) {
				t.Errorf("expected %v, got %v", c.expected, got)
			}
		})
	}
}

func TestDirectoryOthers(t *testing.T) {
	dir := testDirectory()

	expected := []ProcessID{idA, idC}
	if got := dir.Others(idB); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestDirectoryLookup(t *testing.T) {
	dir := testDirectory()

	addr, ok := dir.Lookup(idB)
	if !ok {
		t.Fatal("expected idB in the directory")
	}

	if addr.Port != 2 {
		t.Errorf("expected port 2, got %d", addr.Port)
	}

	if _, ok := dir.Lookup(ProcessID{Priority: 1, Tiebreaker: 1}); ok {
		t.Error("expected lookup of a stranger to miss")
	}
}

func TestDirectorySnapshot(t *testing.T) {
	members := map[ProcessID]Addr{
		idA: {Host: "127.0.0.1", Port: 1},
	}

	dir := NewDirectory(members)

	// Mutating the caller's map must not leak into the snapshot.
	members[idB] = Addr{Host: "127.0.0.1", Port: 2}

	if dir.Len() != 1 {
		t.Errorf("expected 1 member, got %d", dir.Len())
	}
}
