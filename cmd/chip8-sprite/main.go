package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Sprite dimensions. DRW takes a row count in its low nibble.
const (
	SpriteWidth     = 8
	MaxSpriteHeight = 15
)

func main() {
	config := parseArgs()
	img := loadImage(config)

	out, close := makeWriter(config)
	defer close()

	sprites := slice(img, config.Height)

	var err error
	if config.Binary {
		for _, s := range sprites {
			if _, err = out.Write(s); err != nil {
				break
			}
		}
	} else {
		err = list(out, sprites)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// slice cuts the image into sprites of 8 by height pixels, left to right,
// top to bottom. Partial sprites at the right and bottom edges are dropped.
// A pixel is set if its red channel is at least half intensity.
func slice(img image.Image, height int) [][]byte {
	r := img.Bounds()
	w := r.Dx() / SpriteWidth
	h := r.Dy() / height

	sprites := make([][]byte, 0, w*h)

	for y := 0; y < h; y++ {
		sy := r.Min.Y + y*height

		for x := 0; x < w; x++ {
			sx := r.Min.X + x*SpriteWidth
			rows := make([]byte, height)

			for py := 0; py < height; py++ {
				for px := 0; px < SpriteWidth; px++ {
					red, _, _, _ := img.At(sx+px, sy+py).RGBA()
					if red >= 0x8000 {
						rows[py] |= 0x80 >> px
					}
				}
			}

			sprites = append(sprites, rows)
		}
	}

	return sprites
}

// list writes the sprites as data directives, one row per line, with the
// bit pattern in a trailing comment.
func list(out io.Writer, sprites [][]byte) error {
	for i, rows := range sprites {
		if _, err := fmt.Fprintf(out, "; sprite %d\n", i); err != nil {
			return err
		}

		for _, row := range rows {
			if _, err := fmt.Fprintf(out, "DB $%02x ; %08b\n", row, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadImage loads an image from the input file.
func loadImage(c *Config) image.Image {
	fd, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := img.Bounds()
	if r.Dx() < SpriteWidth || r.Dy() < c.Height {
		fmt.Fprintf(os.Stderr, "source image is too small; expected at least %d x %d pixels\n", SpriteWidth, c.Height)
		os.Exit(1)
	}

	return img
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if len(dir) > 0 {
		err := os.MkdirAll(dir, 0744)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
