package vm

import (
	"errors"

	"github.com/hexaflex/chip8/translate"
)

var f = translate.From

var (
	ErrInvalidConfig = errors.New(f("invalid configuration"))
	ErrNotLoaded     = errors.New(f("no program loaded"))
)
