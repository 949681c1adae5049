package spinner

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/drugner/drugdict/shared/console"
)

var loader *spinner.Spinner

// StartSpinner starts the CLI loading spinner on stderr with the given suffix.
// Nothing is drawn when stderr is not a terminal.
func StartSpinner(suffix string) {
	StopSpinner()
	if !console.IsTerminal(os.Stderr) {
		return
	}
	loader = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	loader.Color("yellow") //nolint:errcheck
	loader.Suffix = " " + suffix
	loader.Start()
}

// StopSpinner stops the CLI loading spinner.
func StopSpinner() {
	if loader != nil {
		loader.Stop()
		loader = nil
	}
}
