package kv

// Memory keeps values in a map. It is not safe for concurrent use.
type Memory struct {
	values map[string]string
	saves  int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Load implements Store.
func (m *Memory) Load(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Save implements Store.
func (m *Memory) Save(key, value string) error {
	m.values[key] = value
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *Memory) Saves() int { return m.saves }

// Close implements io.Closer.
func (m *Memory) Close() error { return nil }
