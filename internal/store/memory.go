package store

// MemKV is an in-memory KV used in tests and for throwaway runs.
type MemKV struct {
	blobs map[string][]byte

	// FailSaves makes every Save return this error when non-nil.
	FailSaves error
}

// NewMemKV returns an empty in-memory KV.
func NewMemKV() *MemKV {
	return &MemKV{blobs: make(map[string][]byte)}
}

func (m *MemKV) Load(key string) ([]byte, error) {
	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return blob, nil
}

func (m *MemKV) Save(key string, blob []byte) error {
	if m.FailSaves != nil {
		return m.FailSaves
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	m.blobs[key] = cp
	return nil
}
