package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/devices/chip8/screen"
	"github.com/hexaflex/chip8/vm"
)

// Config defines program configuration.
type Config struct {
	Program     string          // Path to the rom file to load.
	Machine     vm.Config       // Execution speed and entropy.
	ScaleFactor int             // Amount by which each pixel is scaled.
	Fullscreen  bool            // Run in fullscreen?
	Background  screen.Color    // Color of unlit pixels.
	Foreground  screen.Color    // Color of lit pixels.
	Debug       bool            // Enable debug mode? This handles breakpoints if enabled.
	PrintTrace  bool            // Print instruction trace data?
	Breakpoints map[uint16]bool // Addresses at which execution pauses in debug mode.
	WavFile     string          // Record the tone to this file.
	StatsView   string          // Serve runtime statistics on this address.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Machine = vm.DefaultConfig()
	c.ScaleFactor = 10
	c.Background = screen.DefaultBackground
	c.Foreground = screen.DefaultForeground

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "Run in debug mode. The program starts paused.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.IntVar(&c.Machine.InstructionsPerFrame, "ipf", c.Machine.InstructionsPerFrame, "Instructions executed per frame.")
	flag.Func("seed", "Random seed for a reproducible run. A time based seed is used if unset.", func(v string) error {
		seed, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return err
		}
		c.Machine.SetSeed(seed)
		return nil
	})
	flag.StringVar(&c.WavFile, "wav", c.WavFile, "Record the tone to the given WAV file.")
	flag.StringVar(&c.StatsView, "statsview", c.StatsView, "Serve runtime statistics on the given address, e.g. localhost:12600.")
	bg := flag.String("bg", "#000000", "Background color.")
	fg := flag.String("fg", "#33ff66", "Foreground color.")
	breaks := flag.String("break", "", "Comma separated list of hex addresses to pause at in debug mode.")

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

	var err error
	if c.Background, err = screen.ParseColor(*bg); err != nil {
		exit(err)
	}

	if c.Foreground, err = screen.ParseColor(*fg); err != nil {
		exit(err)
	}

	if c.Breakpoints, err = parseBreakpoints(*breaks); err != nil {
		exit(err)
	}

	if err := c.Machine.Validate(); err != nil {
		exit(err)
	}

	c.Program = flag.Arg(0)
	c.PrintTrace = c.Debug
	return &c
}

// parseBreakpoints parses a list like "200,2a4,$3f0".
func parseBreakpoints(v string) (map[uint16]bool, error) {
	set := make(map[uint16]bool)

	for _, field := range strings.Split(v, ",") {
		field = strings.TrimSpace(field)
		if len(field) == 0 {
			continue
		}

		field = strings.TrimPrefix(strings.TrimPrefix(field, "$"), "0x")
		addr, err := strconv.ParseUint(field, 16, 16)
		if err != nil || addr >= cpu.MemoryCapacity {
			return nil, errors.Errorf("invalid breakpoint %q", field)
		}

		set[uint16(addr)] = true
	}

	return set, nil
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
