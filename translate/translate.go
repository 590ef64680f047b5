// Package translate renders the user facing text of errors and log lines
// in the language of the host.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

// printer is picked once, from the locales the host reports at startup.
// Hosts that report none get American English.
var printer *message.Printer

func init() {
	tags, err := locale.GetLocales()
	if err != nil {
		log.Printf("chip8: locale: %v", err)
	}

	if len(tags) == 0 {
		tags = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(tags...))
}

// From formats a message. The key is the English text in fmt.Sprintf
// notation; numbers in args are grouped per the host locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
