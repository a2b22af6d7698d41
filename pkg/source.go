package edep

import "fmt"

// EventSource gives random access to the events of an input file.
type EventSource interface {
	NEntries() int
	Jump(entry int) (*EventType, error)
	Close() error
}

// Navigator walks an event source. Next and Prev wrap around at both ends.
type Navigator struct {
	source  EventSource
	current int
}

func NewNavigator(source EventSource) *Navigator {
	return &Navigator{source: source, current: -1}
}

// Current returns the entry of the last event returned, -1 before the first.
func (n *Navigator) Current() int {
	return n.current
}

func (n *Navigator) Jump(entry int) (*EventType, error) {
	if entry < 0 || entry >= n.source.NEntries() {
		return nil, fmt.Errorf("entry %d out of range [0, %d)", entry, n.source.NEntries())
	}
	event, err := n.source.Jump(entry)
	if err != nil {
		return nil, err
	}
	n.current = entry
	return event, nil
}

func (n *Navigator) Next() (*EventType, error) {
	entries := n.source.NEntries()
	if entries == 0 {
		return nil, fmt.Errorf("event source is empty")
	}
	next := n.current + 1
	if next >= entries {
		logger.Info("Last event reached, going back to the first one", "navigator")
		next = 0
	}
	return n.Jump(next)
}

func (n *Navigator) Prev() (*EventType, error) {
	entries := n.source.NEntries()
	if entries == 0 {
		return nil, fmt.Errorf("event source is empty")
	}
	prev := n.current - 1
	if prev < 0 {
		logger.Info("First event reached, going to the last one", "navigator")
		prev = entries - 1
	}
	return n.Jump(prev)
}

// MemorySource serves events already in memory.
type MemorySource []EventType

func (s MemorySource) NEntries() int {
	return len(s)
}

func (s MemorySource) Jump(entry int) (*EventType, error) {
	if entry < 0 || entry >= len(s) {
		return nil, fmt.Errorf("entry %d out of range [0, %d)", entry, len(s))
	}
	return &s[entry], nil
}

func (s MemorySource) Close() error {
	return nil
}
