package sig

// Registry resolves an algorithm identifier to its primitive descriptor.
type Registry interface {
	Lookup(id string) (Descriptor, error)
}

// StaticRegistry is the built-in, read-only table of the 33 JOSE and WebCrypto identifiers.
// The zero value is ready to use and safe for concurrent lookups.
type StaticRegistry struct{}

var _ Registry = StaticRegistry{}

// Lookup fails with common.ErrUnknownAlgorithm for identifiers outside the table.
func (StaticRegistry) Lookup(id string) (Descriptor, error) {
	sa, err := FromOAuth(id)
	if err != nil {
		return Descriptor{}, err
	}
	return sa.Descriptor()
}
