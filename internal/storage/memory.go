package storage

// MemoryKV keeps values in process memory. It backs tests and throwaway sessions.
type MemoryKV struct {
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Open() error  { return nil }
func (m *MemoryKV) Close() error { return nil }

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Location() string { return "memory" }
