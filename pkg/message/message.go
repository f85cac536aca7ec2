// Package message collects user-facing notifications for a single request.
package message

import (
	"strings"
	"sync"
)

// Level is a bit flag selecting one or more message lists.
type Level uint8

const (
	Error Level = 1 << iota
	Warning
	Notice
	Info

	All = Error | Warning | Notice | Info
)

var levels = []Level{Error, Warning, Notice, Info}

// String returns the lower-case name of a single level.
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Notice:
		return "notice"
	case Info:
		return "info"
	case All:
		return "all"
	}
	return "unknown"
}

// Snapshot is a read-only copy of the accumulated messages.
type Snapshot struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Notices  []string `json:"notices,omitempty"`
	Infos    []string `json:"infos,omitempty"`
}

// Empty reports whether the snapshot holds no messages.
func (s Snapshot) Empty() bool {
	return len(s.Errors)+len(s.Warnings)+len(s.Notices)+len(s.Infos) == 0
}

// Messages accumulates de-duplicated messages per level.
type Messages struct {
	mu    sync.Mutex
	lists map[Level][]string
}

// New constructs an empty accumulator.
func New() *Messages {
	return &Messages{lists: make(map[Level][]string)}
}

// Add appends texts to every list selected by level. Blank texts and texts
// already present in a list are skipped.
func (m *Messages) Add(level Level, texts ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range levels {
		if level&l == 0 {
			continue
		}
		for _, text := range texts {
			if strings.TrimSpace(text) == "" || contains(m.lists[l], text) {
				continue
			}
			m.lists[l] = append(m.lists[l], text)
		}
	}
}

func (m *Messages) AddError(texts ...string)   { m.Add(Error, texts...) }
func (m *Messages) AddWarning(texts ...string) { m.Add(Warning, texts...) }
func (m *Messages) AddNotice(texts ...string)  { m.Add(Notice, texts...) }
func (m *Messages) AddInfo(texts ...string)    { m.Add(Info, texts...) }

// Get returns the lists selected by level. When clear is set the returned
// lists are removed from the accumulator.
func (m *Messages) Get(level Level, clear bool) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var snap Snapshot
	for _, l := range levels {
		if level&l == 0 {
			continue
		}
		list := append([]string(nil), m.lists[l]...)
		switch l {
		case Error:
			snap.Errors = list
		case Warning:
			snap.Warnings = list
		case Notice:
			snap.Notices = list
		case Info:
			snap.Infos = list
		}
		if clear {
			delete(m.lists, l)
		}
	}
	return snap
}

// Has reports whether any list selected by level holds a message.
func (m *Messages) Has(level Level) bool { return m.Count(level) > 0 }

// Count returns the number of messages in the lists selected by level.
func (m *Messages) Count(level Level) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range levels {
		if level&l != 0 {
			n += len(m.lists[l])
		}
	}
	return n
}

// Clear drops the lists selected by level.
func (m *Messages) Clear(level Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range levels {
		if level&l != 0 {
			delete(m.lists, l)
		}
	}
}

func contains(list []string, text string) bool {
	for _, existing := range list {
		if existing == text {
			return true
		}
	}
	return false
}
