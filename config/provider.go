package config

import "errors"

var errReadBytesNotSupported = errors.New("config: map provider does not support ReadBytes")

// mapProvider hands an in-memory mapping to koanf. Keys are taken as-is;
// dotted keys are not split into nested levels.
type mapProvider map[string]any

// ReadBytes is not supported; koanf uses Read for parser-less providers.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errReadBytesNotSupported
}

// Read returns the mapping.
func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
