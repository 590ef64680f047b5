// Package screen renders the CHIP-8 display with OpenGL.
package screen

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
)

// Device draws the 64x32 display as a single texture stretched across the
// window. An OpenGL context must be current when Startup is called.
type Device struct {
	pixels      cpu.Snapshot
	background  Color
	foreground  Color
	shader      uint32
	vao         uint32
	vbo         uint32
	texture     uint32
	colorsDirty bool
	pixelsDirty bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device with the given colors.
func New(background, foreground Color) *Device {
	return &Device{
		background: background,
		foreground: foreground,
	}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.Screen
}

// Update replaces the display contents. Nothing is uploaded unless dirty
// is set.
func (d *Device) Update(snap *cpu.Snapshot, dirty bool) {
	if !dirty {
		return
	}

	d.pixels = *snap
	d.pixelsDirty = true
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)

	if d.colorsDirty {
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("background")), 1, &d.background[0])
		gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("foreground")), 1, &d.foreground[0])
		d.colorsDirty = false
	}

	if d.pixelsDirty {
		uploadTexture(d.texture, cpu.DisplayWidth, cpu.DisplayHeight, d.pixels[:])
		d.pixelsDirty = false
	}

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Startup initializes device resources.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.texture = makeTexture()

	d.colorsDirty = true
	d.pixelsDirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.texture)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
