package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices/chip8/cpu"
)

func main() {
	c := parseArgs()

	rom, err := os.ReadFile(c.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w, close := makeWriter(c)
	defer close()

	if err := disassemble(w, rom, c.Bare); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// disassemble writes a listing of rom, as loaded at the program start
// address. Words that are not valid instructions are listed as data. An odd
// trailing byte is listed as a single byte of data.
func disassemble(w io.Writer, rom []byte, bare bool) error {
	bw := bufio.NewWriter(w)

	for i := 0; i < len(rom); i += 2 {
		addr := cpu.ProgramStart + i

		if i+1 == len(rom) {
			if bare {
				fmt.Fprintf(bw, "DB $%02x\n", rom[i])
			} else {
				fmt.Fprintf(bw, "%04x  %02x    DB $%02x\n", addr, rom[i], rom[i])
			}
			break
		}

		word := uint16(rom[i])<<8 | uint16(rom[i+1])
		if bare {
			fmt.Fprintln(bw, arch.Disassemble(word))
		} else {
			fmt.Fprintf(bw, "%04x  %04x  %s\n", addr, word, arch.Disassemble(word))
		}
	}

	return bw.Flush()
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
