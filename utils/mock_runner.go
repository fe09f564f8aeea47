package utils

import "context"

// MockRunner records calls and returns preconfigured responses.
// Use this in tests to avoid real shell execution.
// Set RunFn for dynamic per-call responses, otherwise Out/Err are returned.
type MockRunner struct {
	Calls [][]string
	Out   string
	Err   error
	RunFn func(bin string, args []string) (string, error)
}

func (m *MockRunner) Run(_ context.Context, bin string, args ...string) (string, error) {
	m.Calls = append(m.Calls, append([]string{bin}, args...))
	if m.RunFn != nil {
		return m.RunFn(bin, args)
	}
	return m.Out, m.Err
}
