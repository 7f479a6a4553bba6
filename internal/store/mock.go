package store

// MockAliasResolver is a canned alias resolver for tests.
type MockAliasResolver struct {
	Mappings map[string]string
	Calls    []string
}

// Resolve returns the canned mapping, or the vendor itself when absent.
func (m *MockAliasResolver) Resolve(vendor string) string {
	m.Calls = append(m.Calls, vendor)
	if canonical, ok := m.Mappings[vendor]; ok {
		return canonical
	}
	return vendor
}
