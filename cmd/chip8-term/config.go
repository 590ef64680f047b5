package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/hexaflex/chip8/devices/chip8/termio"
	"github.com/hexaflex/chip8/vm"
)

// Config defines program configuration.
type Config struct {
	Program    string    // Path to the rom file to load.
	Machine    vm.Config // Execution speed and entropy.
	Script     string    // Starlark keypad script.
	Frames     int       // Stop after this many frames. 0 runs until Esc is pressed.
	Headless   bool      // Run without a terminal and print the final display.
	HoldFrames int       // Frames a key stays down after a key press.
	Terminal   string    // Terminal device to read keys from.
	WavFile    string    // Record the tone to this file.
	PrintTrace bool      // Print instruction trace data?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Machine = vm.DefaultConfig()
	c.HoldFrames = termio.DefaultHoldFrames
	c.Terminal = termio.DefaultDevice

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.Machine.InstructionsPerFrame, "ipf", c.Machine.InstructionsPerFrame, "Instructions executed per frame.")
	flag.Func("seed", "Random seed for a reproducible run. A time based seed is used if unset.", func(v string) error {
		seed, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return err
		}
		c.Machine.SetSeed(seed)
		return nil
	})
	flag.StringVar(&c.Script, "script", c.Script, "Drive the keypad with the given Starlark script.")
	flag.IntVar(&c.Frames, "frames", c.Frames, "Stop after this many frames.")
	flag.BoolVar(&c.Headless, "headless", c.Headless, "Run as fast as possible without a terminal and print the final display. Requires -frames.")
	flag.IntVar(&c.HoldFrames, "hold", c.HoldFrames, "Number of frames a key stays down after it was pressed.")
	flag.StringVar(&c.Terminal, "tty", c.Terminal, "Terminal device to read keys from.")
	flag.StringVar(&c.WavFile, "wav", c.WavFile, "Record the tone to the given WAV file.")
	flag.BoolVar(&c.PrintTrace, "debug", c.PrintTrace, "Print instruction trace data to stderr.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.Headless && c.Frames < 1 {
		fmt.Fprintln(os.Stderr, "-headless requires -frames")
		os.Exit(1)
	}

	if err := c.Machine.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	return &c
}
