// Package gcloudtest provides a scripted gcloud.Runner for tests.
package gcloudtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Response is the canned result of a command.
type Response struct {
	Output string
	Err    error
}

// Fake records every command and answers from Responses. Keys are matched
// against the space-joined command line by prefix; the longest matching key
// wins. Commands without a matching key succeed with empty output.
type Fake struct {
	Responses map[string]Response

	mu    sync.Mutex
	calls []string
}

// Run implements gcloud.Runner.
func (f *Fake) Run(ctx context.Context, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	line := strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, line)
	f.mu.Unlock()

	var best string
	found := false
	for key := range f.Responses {
		if strings.HasPrefix(line, key) && (!found || len(key) > len(best)) {
			best, found = key, true
		}
	}
	if !found {
		return nil, nil
	}

	resp := f.Responses[best]
	if resp.Err != nil {
		return nil, fmt.Errorf("gcloud %s failed: %w", line, resp.Err)
	}
	return []byte(resp.Output), nil
}

// Calls returns the recorded command lines in invocation order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Called reports whether any recorded command starts with prefix.
func (f *Fake) Called(prefix string) bool {
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
