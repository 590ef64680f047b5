package devices

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBroken = errors.New("broken")

type testDevice struct {
	id      ID
	fail    bool
	history *[]string
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup() error {
	*d.history = append(*d.history, "up "+d.id.String())
	if d.fail {
		return errBroken
	}
	return nil
}

func (d *testDevice) Shutdown() error {
	*d.history = append(*d.history, "down "+d.id.String())
	return nil
}

func TestMap(t *testing.T) {
	assert := assert.New(t)

	var history []string
	var dm Map

	assert.True(dm.Connect(&testDevice{id: Keypad, history: &history}))
	assert.True(dm.Connect(&testDevice{id: Screen, history: &history}))
	assert.False(dm.Connect(&testDevice{id: Keypad, history: &history}))

	assert.Equal(0, dm.Find(Keypad))
	assert.Equal(1, dm.Find(Screen))
	assert.Equal(-1, dm.Find(Buzzer))

	assert.NoError(dm.Startup())
	assert.NoError(dm.Shutdown())
	assert.Equal([]string{
		"up c8c8:0002", "up c8c8:0003",
		"down c8c8:0003", "down c8c8:0002",
	}, history)
}

func TestMapStartupErrors(t *testing.T) {
	assert := assert.New(t)

	var history []string
	var dm Map
	dm.Connect(&testDevice{id: Keypad, fail: true, history: &history})
	dm.Connect(&testDevice{id: Screen, history: &history})

	err := dm.Startup()
	assert.Error(err)
	assert.True(errors.Is(err, errBroken))
	assert.Contains(err.Error(), "c8c8:0002")
	assert.Len(history, 2, "remaining devices still start")
}

func TestID(t *testing.T) {
	assert := assert.New(t)

	id := NewID(0xc8c8, 0x0003)
	assert.Equal(Screen, id)
	assert.Equal(0xc8c8, id.Manufacturer())
	assert.Equal(0x0003, id.Serial())
	assert.Equal("c8c8:0003", id.String())
}
