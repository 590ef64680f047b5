package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert.Equal(t, "rom empty", From("rom empty"))

	s := From("%d bytes, limit is %d", 12, 3584)
	assert.True(t, strings.HasPrefix(s, "12 bytes, limit is "), s)
}
