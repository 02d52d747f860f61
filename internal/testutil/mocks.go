// internal/testutil/mocks.go
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cmwen/mcp-dev-env-setup/internal/core/domain"
	"github.com/cmwen/mcp-dev-env-setup/internal/core/ports"
)

const existsPrefix = "command -v "

// FakeRunner implementa ports.CommandRunner con respuestas guionizadas.
//
// Resolution order for a command:
//  1. RunFunc, if set and it reports handled.
//  2. An exact scripted response (Succeed / Fail / Script).
//  3. "command -v <bin>" succeeds iff <bin> is in the binary set.
//  4. "<bin> <flag>" for a known binary returns "<bin> version 1.0.0".
//  5. Anything else fails with "unscripted command".
//
// Scripted commands may also add binaries when they succeed (Provides),
// which is how tests simulate a package manager installing a tool.
type FakeRunner struct {
	RunFunc func(ctx context.Context, command string, opts ports.RunOptions) (domain.CommandOutcome, bool)

	// Latency, if set, delays every command whose text contains the key.
	Latency map[string]time.Duration

	mu       sync.Mutex
	scripted map[string]domain.CommandOutcome
	provides map[string][]string
	binaries map[string]bool
	calls    []string
	callOpts []ports.RunOptions
}

// NewFakeRunner crea un runner con los binarios dados ya "instalados".
func NewFakeRunner(binaries ...string) *FakeRunner {
	r := &FakeRunner{
		scripted: make(map[string]domain.CommandOutcome),
		provides: make(map[string][]string),
		binaries: make(map[string]bool),
	}
	r.AddBinaries(binaries...)
	return r
}

// AddBinaries marks binaries as present on PATH.
func (r *FakeRunner) AddBinaries(names ...string) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		r.binaries[n] = true
	}
	return r
}

// Succeed scripts a successful outcome with the given stdout.
func (r *FakeRunner) Succeed(command, stdout string) *FakeRunner {
	return r.Script(command, domain.CommandOutcome{Stdout: stdout, Succeeded: true})
}

// Fail scripts a failed outcome with the given stderr.
func (r *FakeRunner) Fail(command, stderr string) *FakeRunner {
	return r.Script(command, domain.CommandOutcome{Stderr: stderr, FailureReason: "exit status 1"})
}

// Script registers an exact outcome for a command.
func (r *FakeRunner) Script(command string, outcome domain.CommandOutcome) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripted[command] = outcome
	return r
}

// Provides makes the binaries appear once command succeeds.
func (r *FakeRunner) Provides(command string, binaries ...string) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provides[command] = append(r.provides[command], binaries...)
	return r
}

// Run implementa ports.CommandRunner.
func (r *FakeRunner) Run(ctx context.Context, command string, opts ports.RunOptions) domain.CommandOutcome {
	r.mu.Lock()
	r.calls = append(r.calls, command)
	r.callOpts = append(r.callOpts, opts)
	var delay time.Duration
	for key, d := range r.Latency {
		if strings.Contains(command, key) {
			delay = d
		}
	}
	r.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return domain.CommandOutcome{FailureReason: ctx.Err().Error(), TimedOut: true}
		}
	}

	if r.RunFunc != nil {
		if out, ok := r.RunFunc(ctx, command, opts); ok {
			return out
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if out, ok := r.scripted[command]; ok {
		if out.Succeeded {
			for _, b := range r.provides[command] {
				r.binaries[b] = true
			}
		}
		return out
	}

	if bin, ok := strings.CutPrefix(command, existsPrefix); ok {
		bin = strings.TrimSpace(bin)
		if r.binaries[bin] {
			return domain.CommandOutcome{Stdout: "/usr/bin/" + bin + "\n", Succeeded: true}
		}
		return domain.CommandOutcome{FailureReason: "exit status 1"}
	}

	fields := strings.Fields(command)
	if len(fields) == 2 && r.binaries[fields[0]] {
		return domain.CommandOutcome{Stdout: fields[0] + " version 1.0.0\n", Succeeded: true}
	}

	return domain.CommandOutcome{Stderr: "unscripted command: " + command, FailureReason: "exit status 127"}
}

// Calls devuelve una copia de los comandos ejecutados, en orden.
func (r *FakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// CallOptions returns the options passed with each call, in order.
func (r *FakeRunner) CallOptions() []ports.RunOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.RunOptions(nil), r.callOpts...)
}

// MutatingCalls returns the calls that were not existence or version probes.
func (r *FakeRunner) MutatingCalls() []string {
	var out []string
	for _, c := range r.Calls() {
		if strings.HasPrefix(c, existsPrefix) {
			continue
		}
		if fields := strings.Fields(c); len(fields) == 2 && strings.HasPrefix(fields[1], "-") {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Called reports whether the exact command was run.
func (r *FakeRunner) Called(command string) bool {
	for _, c := range r.Calls() {
		if c == command {
			return true
		}
	}
	return false
}

// Reset clears the call log but keeps scripts and binaries.
func (r *FakeRunner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.callOpts = nil
}

// RecordingNotifier records every event it receives. NotifyFunc, when set,
// decides the returned error.
type RecordingNotifier struct {
	NotifyFunc func(ctx context.Context, event ports.Event) error

	mu     sync.Mutex
	events []ports.Event
	closed bool
}

// Notify implementa ports.Notifier.
func (n *RecordingNotifier) Notify(ctx context.Context, event ports.Event) error {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
	if n.NotifyFunc != nil {
		return n.NotifyFunc(ctx, event)
	}
	return nil
}

// Close implementa ports.Notifier.
func (n *RecordingNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}

// Events returns a copy of the recorded events.
func (n *RecordingNotifier) Events() []ports.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Event(nil), n.events...)
}

// Count returns how many events of a type were recorded.
func (n *RecordingNotifier) Count(eventType ports.EventType) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.Type == eventType {
			c++
		}
	}
	return c
}
