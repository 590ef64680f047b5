package main

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	assert := assert.New(t)

	// Two sprites side by side, 3 rows high, plus a partial column.
	img := image.NewGray(image.Rect(0, 0, 20, 3))
	img.Set(0, 0, color.White)
	img.Set(7, 1, color.White)
	img.Set(8, 2, color.White)
	img.Set(9, 2, color.Gray{Y: 0x40})
	img.Set(16, 0, color.White)

	sprites := slice(img, 3)
	require.Len(t, sprites, 2)
	assert.Equal([]byte{0x80, 0x01, 0x00}, sprites[0])
	assert.Equal([]byte{0x00, 0x00, 0x80}, sprites[1])
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, list(&out, [][]byte{{0xf0, 0x90}}))
	assert.Equal(t, "; sprite 0\nDB $f0 ; 11110000\nDB $90 ; 10010000\n", out.String())
}
