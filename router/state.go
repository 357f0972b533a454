package router

import (
	"github.com/loomterm/loom/binding"
	"github.com/loomterm/loom/node"
)

// Phase is the router's per-app state machine (§4.5 "State machine").
type Phase int

const (
	// Idle: no chord is pending.
	Idle Phase = iota
	// MidChord: the router is waiting for the next key step of a chord
	// whose first step(s) already matched an internal trie node.
	MidChord
)

// State is the router's per-app, single-instance state: the current
// chord-trie position (if any), the path that was active when the chord
// began, and the index into that path owning the chord. ChordNode is nil
// iff the router is Idle.
type State struct {
	Phase      Phase
	ChordNode  *binding.TrieNode
	AnchorPath []node.Node
	LayerIndex int
}

// reset returns the router to Idle, clearing chord bookkeeping.
func (s *State) reset() {
	s.Phase = Idle
	s.ChordNode = nil
	s.AnchorPath = nil
	s.LayerIndex = 0
}

// samePath reports whether path is reference-identical, element by
// element, to the router's anchor path — used to cancel a chord when
// focus moves mid-sequence.
func samePath(a, b []node.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
