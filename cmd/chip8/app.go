package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/chip8/buzzer"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
	"github.com/hexaflex/chip8/devices/chip8/keypad"
	"github.com/hexaflex/chip8/devices/chip8/screen"
	"github.com/hexaflex/chip8/statsview"
	"github.com/hexaflex/chip8/vm"
)

// App defines application context.
type App struct {
	config       *Config        // Application configuration.
	window       *glfw.Window   // OpenGL/GLFW context.
	machine      *vm.Machine    // VM with program to be run.
	display      *screen.Device // Display renderer.
	keypad       *keypad.Device // Keyboard mapped onto the hex keypad.
	titleUpdated time.Time      // Value used to periodically update window title.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = screen.New(config.Background, config.Foreground)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	if len(a.config.StatsView) > 0 {
		statsview.Launch(os.Stdout, a.config.StatsView)
	}

	a.keypad = keypad.New(a.window)

	var speaker vm.Speaker
	if len(a.config.WavFile) > 0 {
		speaker = buzzer.New(a.config.WavFile, a.config.Machine.FrameRate)
	}

	var err error
	a.machine, err = vm.New(a.config.Machine, a.printTrace, a.keypad, a, speaker)
	if err != nil {
		return err
	}

	a.machine.Connect(a.display)

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	if a.config.Debug {
		a.machine.Stop()
	}

	if err := a.machine.Startup(); err != nil {
		return err
	}

	defer a.machine.Shutdown()

	err = a.machine.Run(context.Background())

	var cerr *cpu.Error
	if errors.As(err, &cerr) {
		log.Printf("%v\n%s", err, a.machine.CPU())
	}

	return err
}

// Present draws the display and handles window events. It is called by
// the machine once per frame.
func (a *App) Present(snap *cpu.Snapshot, dirty bool) error {
	a.display.Update(snap, dirty)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	a.display.Draw()
	a.window.SwapBuffers()

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.machine.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq))
	}

	glfw.PollEvents()
	return nil
}

// ShouldClose returns true once the window was closed.
func (a *App) ShouldClose() bool {
	return a.window.ShouldClose()
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.Debug = !a.config.Debug
	case glfw.KeyF3:
		log.Printf("\n%s", a.machine.CPU())
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		a.machine.ToggleRun()
	case glfw.KeyF7:
		err = a.machine.Step()
	case glfw.KeyF8:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := cpu.DisplayWidth * a.config.ScaleFactor
	height := cpu.DisplayHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	// Frames are paced by the machine clock.
	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and resets the cpu.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	rom, err := os.ReadFile(a.config.Program)
	if err != nil {
		return err
	}

	return a.machine.Load(rom)
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
//
// It also ensures execution is stopped if the given instruction has a breakpoint
// associated with it. This only happens if a.config.Debug is true.
func (a *App) printTrace(i *cpu.Instruction) {
	if a.config.Debug && a.config.Breakpoints[i.PC] {
		log.Printf("breakpoint at %04x", i.PC)
		a.machine.Stop()
	}

	if !a.config.PrintTrace {
		return
	}

	fmt.Printf("%04x %04x  %s\n", i.PC, i.Opcode, i)
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("keypad:\n")
	sb.WriteString(" 1 2 3 4  ->  1 2 3 C\n")
	sb.WriteString(" Q W E R  ->  4 5 6 D\n")
	sb.WriteString(" A S D F  ->  7 8 9 E\n")
	sb.WriteString(" Z X C V  ->  A 0 B F\n")
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the emulator.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Enable/Disable debug mode.\n")
	sb.WriteString(" F3       Print the cpu registers.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Perform a single execution step.\n")
	sb.WriteString(" F8       Enable/Disable debug trace output.")
	log.Println(sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
