package arch

import "fmt"

// RegisterCount is the number of general purpose registers.
const RegisterCount = 16

// RegisterName returns the name of the register with the given index.
func RegisterName(index int) string {
	return fmt.Sprintf("V%X", index&0xf)
}
