package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/chip8/buzzer"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/devices/chip8/script"
	"github.com/hexaflex/chip8/devices/chip8/termio"
	"github.com/hexaflex/chip8/vm"
)

func main() {
	config := parseArgs()

	if err := run(config); err != nil {
		log.Fatal(err)
	}
}

func run(c *Config) error {
	rom, err := os.ReadFile(c.Program)
	if err != nil {
		return err
	}

	var term *termio.Device
	var keys cpu.Keypad
	var speaker vm.Speaker

	present := &limiter{limit: c.Frames}

	if !c.Headless {
		term = termio.New(c.Terminal, os.Stdout, c.HoldFrames)
		present.Presenter = term
		keys = term
	}

	if len(c.Script) > 0 {
		sd, err := script.Load(c.Script, nil)
		if err != nil {
			return err
		}
		keys = &scripted{Device: sd, term: term}
	}

	if len(c.WavFile) > 0 {
		speaker = buzzer.New(c.WavFile, c.Machine.FrameRate)
	}

	var trace cpu.TraceFunc
	if c.PrintTrace {
		trace = func(i *cpu.Instruction) {
			fmt.Fprintf(os.Stderr, "%04x %04x  %s\n", i.PC, i.Opcode, i)
		}
	}

	m, err := vm.New(c.Machine, trace, keys, present, speaker)
	if err != nil {
		return err
	}

	// The terminal is a device of its own when the script owns the keypad.
	if term != nil {
		m.Connect(term)
	}

	if err := m.Load(rom); err != nil {
		return err
	}

	if err := m.Startup(); err != nil {
		m.Shutdown()
		return err
	}

	if c.Headless {
		err = m.RunFrames(c.Frames)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = m.Run(ctx)
		stop()
	}

	if serr := m.Shutdown(); serr != nil {
		log.Println(serr)
	}

	if errors.Is(err, context.Canceled) {
		err = nil
	}

	var cerr *cpu.Error
	if errors.As(err, &cerr) {
		return errors.Errorf("%v\n%s", err, m.CPU())
	}

	if err != nil {
		return err
	}

	if c.Headless {
		return termio.Render(os.Stdout, &present.last)
	}

	return nil
}
