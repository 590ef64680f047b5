// Package statsview serves runtime statistics of the emulator process over
// HTTP, for profiling instruction rates and allocations.
//
// After launch, charts are available at
//
//	localhost:12600/debug/statsview
//
// and the standard pprof handlers at
//
//	localhost:12600/debug/pprof/
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is the address the server listens on.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// URL returns the address of the statistics page for the given listen address.
func URL(addr string) string {
	return "http://" + addr + path
}

// Launch starts the statistics server in a new goroutine and reports its
// location to output.
func Launch(output io.Writer, addr string) {
	if len(addr) == 0 {
		addr = DefaultAddress
	}

	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at %s\n", URL(addr))
}
