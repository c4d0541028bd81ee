package composite

import (
	"fmt"
	"strings"

	"github.com/ehsanranjbar/propmap/schema"
	"gopkg.in/yaml.v3"
)

// DefaultDelimiter is used by configs that do not set a delimiter.
const DefaultDelimiter = "."

// Config is the serializable form of a Converter.
//
//	prefix: addr
//	delimiter: "."
//	allowCast: true
//	type:
//	  key: enum:Region
//	  value:
//	    leaf: float64
type Config struct {
	Prefix    string      `yaml:"prefix"`
	Delimiter string      `yaml:"delimiter,omitempty"`
	AllowCast bool        `yaml:"allowCast,omitempty"`
	Type      *TypeConfig `yaml:"type,omitempty"`
}

// TypeConfig is the serializable form of a schema.Descriptor.
type TypeConfig struct {
	// Key is "string" (the default) or "enum:<name>".
	Key string `yaml:"key,omitempty"`
	// Value describes nested map values. It excludes Leaf.
	Value *TypeConfig `yaml:"value,omitempty"`
	// Leaf is a kind name as accepted by schema.ParseKind, "any" by default.
	Leaf string `yaml:"leaf,omitempty"`
}

// ParseConfig parses a YAML converter config.
func ParseConfig(bz []byte) (Config, error) {
	var cfg Config
	err := yaml.Unmarshal(bz, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse converter config: %w", err)
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}
	return cfg, nil
}

// Build creates the Converter described by the config, resolving enum keys against enums.
func (cfg Config) Build(enums ...*schema.Enum) (*Converter, error) {
	byName := make(map[string]*schema.Enum, len(enums))
	for _, e := range enums {
		byName[e.Name()] = e
	}

	var desc *schema.Descriptor
	if cfg.Type != nil {
		var err error
		desc, err = cfg.Type.descriptor(byName)
		if err != nil {
			return nil, fmt.Errorf("failed to build type of %q: %w", cfg.Prefix, err)
		}
	}

	return New(cfg.Prefix, cfg.Delimiter, WithAllowCast(cfg.AllowCast), WithDescriptor(desc))
}

func (tc *TypeConfig) descriptor(enums map[string]*schema.Enum) (*schema.Descriptor, error) {
	var ks schema.KeySpec
	switch name, isEnum := strings.CutPrefix(tc.Key, "enum:"); {
	case isEnum:
		e, ok := enums[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEnum, name)
		}
		ks = schema.EnumKey(e)
	case tc.Key == "" || tc.Key == "string":
		ks = schema.TextKey()
	default:
		return nil, fmt.Errorf("%w, got %q", ErrUnsupportedKeyType, tc.Key)
	}

	if tc.Value != nil {
		if tc.Leaf != "" {
			return nil, fmt.Errorf("%w: value and leaf are exclusive", ErrInvalidConfig)
		}
		elem, err := tc.Value.descriptor(enums)
		if err != nil {
			return nil, err
		}
		return schema.MapOf(ks, elem), nil
	}

	leaf := schema.KindAny
	if tc.Leaf != "" {
		var err error
		leaf, err = schema.ParseKind(tc.Leaf)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return schema.LeafMap(ks, leaf), nil
}
