package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keycap/internal/capture"
	"github.com/studiowebux/keycap/internal/types"
)

// recheckMsg fires a callback queued by tickScheduler
type recheckMsg struct {
	id int
}

// tickScheduler turns capture timers into tea.Tick commands, so callbacks
// run inside Update instead of on a timer goroutine.
type tickScheduler struct {
	next    int
	pending map[int]func()
	cmds    []tea.Cmd
}

var _ capture.Scheduler = (*tickScheduler)(nil)

func newTickScheduler() *tickScheduler {
	return &tickScheduler{pending: make(map[int]func())}
}

func (s *tickScheduler) After(d time.Duration, fn func()) {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return recheckMsg{id: id}
	}))
}

// drain returns the commands queued since the last call
func (s *tickScheduler) drain() []tea.Cmd {
	cmds := s.cmds
	s.cmds = nil
	return cmds
}

// fire runs the callback for id once
func (s *tickScheduler) fire(id int) bool {
	fn, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	fn()
	return true
}

// fieldErrors keeps the messages shown under the inputs
type fieldErrors struct {
	messages []string
	anchors  []string
}

var _ capture.ErrorRenderer = (*fieldErrors)(nil)

func (e *fieldErrors) Render(messages []string, anchors []string) bool {
	e.messages = messages
	e.anchors = anchors
	return len(messages) > 0
}

func (e *fieldErrors) clear() {
	e.messages = nil
	e.anchors = nil
}

// detachFunc adapts a function to capture.Detacher
type detachFunc func()

func (f detachFunc) Detach() { f() }

// modeField exposes the mode toggle as the sibling field the session reads
func (m *Model) modeField(name string) (capture.Field, bool) {
	if name != types.ModeFieldName {
		return capture.Field{}, false
	}
	return capture.Field{Name: name, Value: string(m.mode)}, true
}
