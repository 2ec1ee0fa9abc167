package kv

import "errors"

// ErrWriteFailed is returned by a Memory store with FailWrites set.
var ErrWriteFailed = errors.New("kv: write failed")

// Memory is an in-memory Store for tests. FailWrites makes every Set
// fail, which exercises the persistence-failure path without a real
// broken database.
type Memory struct {
	values     map[string]string
	FailWrites bool
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if m.FailWrites {
		return ErrWriteFailed
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
