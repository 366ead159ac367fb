// Package cli wires the pipeline to cobra/pflag flags and a stderr/
// stdout Notifier, optionally fronted by a bubbletea progress screen.
// Grounded on the teacher's main.go (flag setup -> signal handling ->
// run loop) generalized from stdlib flag to cobra/pflag, since spec §6
// names a full multi-flag CLI surface the teacher's single-flag parser
// doesn't model.
package cli

import (
	"fmt"
	"io"
)

// ConsoleNotifier implements pluginapi.Notifier by writing to the
// given streams, per spec §6's "errors and cancellations are reported
// via standard error".
type ConsoleNotifier struct {
	Out io.Writer
	Err io.Writer

	OnLog      func(messageID string, params ...any)
	OnError    func(messageID string, err error, params ...any)
	OnFinished func(cancelled bool)
}

func (n *ConsoleNotifier) Log(messageID string, params ...any) {
	fmt.Fprintf(n.Out, "%s %v\n", messageID, params)
	if n.OnLog != nil {
		n.OnLog(messageID, params...)
	}
}

func (n *ConsoleNotifier) LogError(messageID string, err error, params ...any) {
	fmt.Fprintf(n.Err, "%s: %v %v\n", messageID, err, params)
	if n.OnError != nil {
		n.OnError(messageID, err, params...)
	}
}

func (n *ConsoleNotifier) UpdateButtonStates(canClose bool) {}

func (n *ConsoleNotifier) Finished(cancelled bool) {
	if cancelled {
		fmt.Fprintln(n.Err, "cancelled")
	}
	if n.OnFinished != nil {
		n.OnFinished(cancelled)
	}
}
