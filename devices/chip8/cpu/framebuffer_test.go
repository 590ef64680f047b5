package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawSpriteWraps(t *testing.T) {
	assert := assert.New(t)

	var fb Framebuffer
	collision := fb.DrawSprite(60, 0, []byte{0xff})
	assert.False(collision)

	for x := 0; x < DisplayWidth; x++ {
		lit := x >= 60 || x < 4
		assert.Equal(lit, fb.Pixel(x, 0), "x=%d", x)
	}
}

func TestDrawSpriteWrapsVertically(t *testing.T) {
	assert := assert.New(t)

	var fb Framebuffer
	fb.DrawSprite(0, 30, []byte{0x80, 0x80, 0x80, 0x80})

	assert.True(fb.Pixel(0, 30))
	assert.True(fb.Pixel(0, 31))
	assert.True(fb.Pixel(0, 0))
	assert.True(fb.Pixel(0, 1))
	assert.False(fb.Pixel(0, 2))
}

func TestDrawSpriteCollision(t *testing.T) {
	assert := assert.New(t)

	var fb Framebuffer
	assert.False(fb.DrawSprite(10, 10, []byte{0xf0}))

	// Overlapping the lit pixels flips them off and collides.
	assert.True(fb.DrawSprite(12, 10, []byte{0xf0}))
	assert.False(fb.Pixel(12, 10))
	assert.False(fb.Pixel(13, 10))
	assert.True(fb.Pixel(10, 10))
	assert.True(fb.Pixel(15, 10))

	// Zero bits never collide.
	assert.False(fb.DrawSprite(10, 10, []byte{0x00}))
}

func TestClearAndDirty(t *testing.T) {
	assert := assert.New(t)

	var fb Framebuffer
	assert.False(fb.TakeDirty())

	fb.DrawSprite(0, 0, []byte{0xaa})
	assert.True(fb.TakeDirty())
	assert.False(fb.TakeDirty())

	snap := fb.Snapshot()
	assert.True(snap.At(0, 0))
	assert.False(snap.At(1, 0))

	fb.Clear()
	assert.True(fb.TakeDirty())
	assert.Equal(Snapshot{}, fb.Snapshot())

	// The snapshot is a copy.
	assert.True(snap.At(0, 0))
}
