package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pavtv/pavtv"
)

// Sink adapts a running bubbletea program to the engine's sink
// interface. Every method forwards a message via Program.Send, which is
// safe to call from any goroutine, so the six pollers and the
// supervisor can deliver concurrently.
type Sink struct {
	program *tea.Program
}

// NewSink wraps a program.
func NewSink(p *tea.Program) *Sink {
	return &Sink{program: p}
}

// OnState implements [pavtv.Sink].
func (s *Sink) OnState(state pavtv.ConnectionState) {
	s.program.Send(stateMsg(state))
}

// OnEvents implements [pavtv.Sink].
func (s *Sink) OnEvents(r pavtv.Result[pavtv.Events]) {
	if r.OK && r.Data != nil {
		s.program.Send(eventsMsg(len(r.Data.Events)))
	}
}

// OnStatus implements [pavtv.Sink].
func (s *Sink) OnStatus(r pavtv.Result[pavtv.MatchStatus]) {
	if r.OK && r.Data != nil {
		s.program.Send(statusMsg(*r.Data))
	}
}

// OnLocations implements [pavtv.Sink]. The watch view has no map, so
// locations are dropped.
func (s *Sink) OnLocations(r pavtv.Result[pavtv.Locations]) {}

// OnKillfeed implements [pavtv.Sink].
func (s *Sink) OnKillfeed(r pavtv.Result[pavtv.Killfeed]) {
	if r.OK && r.Data != nil && len(r.Data.Killfeed) > 0 {
		s.program.Send(killfeedMsg(r.Data.Killfeed))
	}
}

// OnTime implements [pavtv.Sink].
func (s *Sink) OnTime(r pavtv.Result[pavtv.MatchTime]) {
	if r.OK && r.Data != nil {
		s.program.Send(timeMsg(r.Data.MatchTime))
	}
}

// OnPause implements [pavtv.Sink].
func (s *Sink) OnPause(r pavtv.Result[pavtv.PauseState]) {
	if r.OK && r.Data != nil {
		s.program.Send(pauseMsg(r.Data.Paused))
	}
}
