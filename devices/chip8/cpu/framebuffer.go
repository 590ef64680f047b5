package cpu

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Snapshot is a read-only copy of the display contents.
// Each byte is 1 for a lit pixel and 0 otherwise, stored row by row.
type Snapshot [DisplayWidth * DisplayHeight]byte

// At returns true if the pixel at x, y is lit.
func (s *Snapshot) At(x, y int) bool {
	return s[y*DisplayWidth+x] != 0
}

// Framebuffer is the monochrome display surface sprites are drawn onto.
type Framebuffer struct {
	pixels Snapshot
	dirty  bool
}

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() {
	fb.pixels = Snapshot{}
	fb.dirty = true
}

// DrawSprite XORs the given sprite rows onto the display with the top left
// corner at x, y. Bits are drawn most significant first. Pixels falling off
// an edge wrap around to the opposite edge.
//
// Returns true if any set sprite bit hit a pixel that was already lit.
func (fb *Framebuffer) DrawSprite(x, y int, rows []byte) bool {
	var collision bool

	for row, bits := range rows {
		py := (y + row) % DisplayHeight
		line := fb.pixels[py*DisplayWidth:]

		for bit := 0; bit < 8; bit++ {
			if bits&(0x80>>bit) == 0 {
				continue
			}

			px := (x + bit) % DisplayWidth
			if line[px] != 0 {
				collision = true
			}
			line[px] ^= 1
		}
	}

	fb.dirty = true
	return collision
}

// Pixel returns true if the pixel at x, y is lit.
// Coordinates wrap like they do for DrawSprite.
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb.pixels.At(x%DisplayWidth, y%DisplayHeight)
}

// Snapshot returns a copy of the current display contents.
func (fb *Framebuffer) Snapshot() Snapshot {
	return fb.pixels
}

// TakeDirty reports whether the display changed since the last call.
func (fb *Framebuffer) TakeDirty() bool {
	dirty := fb.dirty
	fb.dirty = false
	return dirty
}
