package termio

import (
	"bufio"
	"io"

	"github.com/hexaflex/chip8/devices/chip8/cpu"
)

// ANSI control sequences.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Half block glyphs, indexed by top | bottom<<1.
var blocks = [4]string{" ", "▀", "▄", "█"}

// Render draws the display to w. Each character cell holds two rows of
// pixels, so the output is 64 columns by 16 lines. Lines end in CRLF
// because the terminal is in raw mode.
func Render(w io.Writer, snap *cpu.Snapshot) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(cursorHome)

	for y := 0; y < cpu.DisplayHeight; y += 2 {
		for x := 0; x < cpu.DisplayWidth; x++ {
			index := 0
			if snap.At(x, y) {
				index |= 1
			}
			if snap.At(x, y+1) {
				index |= 2
			}
			bw.WriteString(blocks[index])
		}
		bw.WriteString("\r\n")
	}

	return bw.Flush()
}
