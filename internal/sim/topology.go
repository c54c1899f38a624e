package sim

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hupe1980/vivaldi/codec"
)

// Link is a symmetric network path between two nodes.
type Link struct {
	A string `json:"a"`
	B string `json:"b"`

	// RTT is the true round-trip time in milliseconds.
	RTT float64 `json:"rtt"`

	// Indirect links are never measured. They only provide the ground truth
	// for the estimate between nodes that do not talk to each other.
	Indirect bool `json:"indirect,omitempty"`
}

// Duration returns the link RTT.
func (l Link) Duration() time.Duration {
	return time.Duration(l.RTT * float64(time.Millisecond))
}

// Topology describes a simulated network.
type Topology struct {
	Nodes []string `json:"nodes"`
	Links []Link   `json:"links"`
}

var errEmptyTopology = errors.New("topology has no measured links")

// Validate checks that every link connects two distinct, declared nodes with
// a positive RTT and that no pair is declared twice.
func (t Topology) Validate() error {
	nodes := make(map[string]struct{}, len(t.Nodes))
	for _, n := range t.Nodes {
		if n == "" {
			return errors.New("topology contains an empty node name")
		}
		if _, dup := nodes[n]; dup {
			return fmt.Errorf("duplicate node %q", n)
		}
		nodes[n] = struct{}{}
	}

	seen := make(map[pair]struct{}, len(t.Links))
	measured := 0
	for _, l := range t.Links {
		if _, ok := nodes[l.A]; !ok {
			return fmt.Errorf("link %s-%s: unknown node %q", l.A, l.B, l.A)
		}
		if _, ok := nodes[l.B]; !ok {
			return fmt.Errorf("link %s-%s: unknown node %q", l.A, l.B, l.B)
		}
		if l.A == l.B {
			return fmt.Errorf("link %s-%s: self link", l.A, l.B)
		}
		if l.Duration() <= 0 {
			return fmt.Errorf("link %s-%s: rtt must be positive, got %vms", l.A, l.B, l.RTT)
		}

		p := newPair(l.A, l.B)
		if _, dup := seen[p]; dup {
			return fmt.Errorf("link %s-%s declared twice", l.A, l.B)
		}
		seen[p] = struct{}{}

		if !l.Indirect {
			measured++
		}
	}

	if measured == 0 {
		return errEmptyTopology
	}
	return nil
}

// ParseTopology decodes a JSON topology.
func ParseTopology(data []byte) (Topology, error) {
	var t Topology
	if err := codec.Default.Unmarshal(data, &t); err != nil {
		return Topology{}, fmt.Errorf("parse topology: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Topology{}, err
	}
	return t, nil
}

// LoadTopology reads a JSON topology from path.
func LoadTopology(path string) (Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, err
	}
	return ParseTopology(data)
}

// DefaultTopology is two data centres of two nodes each. The nodes of dc1
// only measure each other and the gateway of dc2, so the remaining pairs
// are estimated indirectly.
func DefaultTopology() Topology {
	return Topology{
		Nodes: []string{"dc1-a", "dc1-b", "dc2-a", "dc2-b"},
		Links: []Link{
			{A: "dc1-a", B: "dc1-b", RTT: 10},
			{A: "dc1-a", B: "dc2-a", RTT: 50},
			{A: "dc1-b", B: "dc2-a", RTT: 50},
			{A: "dc2-a", B: "dc2-b", RTT: 10},
			{A: "dc1-a", B: "dc2-b", RTT: 60, Indirect: true},
			{A: "dc1-b", B: "dc2-b", RTT: 60, Indirect: true},
		},
	}
}

type pair struct {
	a, b string
}

func newPair(a, b string) pair {
	if b < a {
		a, b = b, a
	}
	return pair{a: a, b: b}
}
