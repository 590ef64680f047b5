package main

import (
	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/devices/chip8/script"
	"github.com/hexaflex/chip8/devices/chip8/termio"
	"github.com/hexaflex/chip8/vm"
)

// limiter ends the session after a fixed number of frames. A nil
// presenter only keeps the last display contents.
type limiter struct {
	vm.Presenter
	limit  int
	frames int
	last   cpu.Snapshot
}

func (l *limiter) Present(snap *cpu.Snapshot, dirty bool) error {
	l.frames++
	l.last = *snap

	if l.Presenter == nil {
		return nil
	}
	return l.Presenter.Present(snap, dirty)
}

func (l *limiter) ShouldClose() bool {
	if l.limit > 0 && l.frames >= l.limit {
		return true
	}
	return l.Presenter != nil && l.Presenter.ShouldClose()
}

// scripted takes its keys from a script while the terminal keeps
// watching for the quit keys.
type scripted struct {
	*script.Device
	term *termio.Device
}

func (s *scripted) Update() error {
	if s.term != nil {
		if err := s.term.Update(); err != nil {
			return err
		}
	}
	return s.Device.Update()
}
