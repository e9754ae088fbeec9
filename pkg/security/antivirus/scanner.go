// Package antivirus checks uploaded resumes for malware before they reach
// object storage.
package antivirus

import (
	"context"
	"errors"
)

// ErrNoScanner is reported when a chain has no reachable scanner.
var ErrNoScanner = errors.New("no antivirus scanner available")

// Verdict is the outcome of one scan. A scan that could not complete is
// reported as Infected with Err set.
type Verdict struct {
	Infected bool
	Threat   string
	Scanner  string
	Err      error
}

// Clean reports whether the file may be stored.
func (v Verdict) Clean() bool {
	return !v.Infected && v.Err == nil
}

type Scanner interface {
	Scan(ctx context.Context, name string, data []byte) Verdict
	Name() string
	Available(ctx context.Context) bool
}

// NoOpScanner accepts everything. Used when no daemon is configured.
type NoOpScanner struct{}

var _ Scanner = NoOpScanner{}

func (NoOpScanner) Scan(context.Context, string, []byte) Verdict {
	return Verdict{Scanner: "noop"}
}

func (NoOpScanner) Name() string { return "noop" }

func (NoOpScanner) Available(context.Context) bool { return true }

// Chain hands the file to the first available scanner and fails closed when
// none answers.
type Chain []Scanner

var _ Scanner = Chain(nil)

func (c Chain) Scan(ctx context.Context, name string, data []byte) Verdict {
	for _, s := range c {
		if s.Available(ctx) {
			return s.Scan(ctx, name, data)
		}
	}
	return Verdict{Infected: true, Scanner: c.Name(), Err: ErrNoScanner}
}

func (Chain) Name() string { return "chain" }

func (c Chain) Available(ctx context.Context) bool {
	for _, s := range c {
		if s.Available(ctx) {
			return true
		}
	}
	return false
}
