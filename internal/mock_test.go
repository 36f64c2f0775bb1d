package internal

import (
	"errors"
	"fmt"
	"strings"
)

// MockRunner is a mock implementation of CommandRunner for testing
type MockRunner struct {
	OutputFunc func(name string, args ...string) (string, error)
	RunFunc    func(name string, args ...string) error
	Outputs    [][]string
	Runs       [][]string
}

func (m *MockRunner) Output(name string, args ...string) (string, error) {
	m.Outputs = append(m.Outputs, append([]string{name}, args...))
	if m.OutputFunc == nil {
		return "", errors.New("exit status 1")
	}
	return m.OutputFunc(name, args...)
}

func (m *MockRunner) Run(name string, args ...string) error {
	m.Runs = append(m.Runs, append([]string{name}, args...))
	if m.RunFunc == nil {
		return nil
	}
	return m.RunFunc(name, args...)
}

// MockSettings answers Get from a map keyed by "schema key"; missing keys fail like gsettings does
type MockSettings struct {
	Values  map[string]string
	Queries []string
}

func (m *MockSettings) Get(_, schema, key string) (string, error) {
	q := schema + " " + key
	m.Queries = append(m.Queries, q)
	if v, ok := m.Values[q]; ok {
		return v, nil
	}
	return "", NewExternalToolError(fmt.Sprintf("failed to read %s", q), errors.New("No such schema"))
}

// gsettingsOutput fakes "gsettings [--schemadir dir] get schema key" from a map keyed by "schema key"
func gsettingsOutput(values map[string]string) func(string, ...string) (string, error) {
	return func(name string, args ...string) (string, error) {
		if name != "gsettings" || len(args) < 3 {
			return "", fmt.Errorf("unexpected command %s %s", name, strings.Join(args, " "))
		}
		q := args[len(args)-2] + " " + args[len(args)-1]
		if v, ok := values[q]; ok {
			return v, nil
		}
		return "", errors.New("exit status 1")
	}
}

func float(v float64) *float64 {
	return &v
}
