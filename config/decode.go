package config

import (
	"fmt"

	"github.com/knadh/koanf/maps"
	"github.com/spf13/viper"
)

// Decode unmarshals a merged mapping into target using mapstructure tags.
// Key matching is case-insensitive and string durations such as "5s"
// decode into time.Duration fields.
func Decode(m Mapping, target any) error {
	v := viper.New()
	// viper lowercases the keys of the map it is given.
	if err := v.MergeConfigMap(maps.Copy(m)); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := v.Unmarshal(target); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
