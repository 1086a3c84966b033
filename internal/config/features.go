package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Feature names recognized by --features and the features config key.
const (
	FeatureCapitals = "from_capitals"
	FeatureRegions  = "from_regions"
	FeatureAlpha2   = "from_alpha_2"
	FeatureAlpha3   = "from_alpha_3"
)

// FeatureNames lists every optional table in emission order.
var FeatureNames = []string{FeatureCapitals, FeatureRegions, FeatureAlpha2, FeatureAlpha3}

// Features selects which optional lookup tables are emitted. The name
// table is always emitted.
type Features struct {
	Capitals bool
	Regions  bool
	Alpha2   bool
	Alpha3   bool
}

var _ pflag.Value = (*Features)(nil)

// AllFeatures returns a Features value with every table enabled.
func AllFeatures() Features {
	return Features{Capitals: true, Regions: true, Alpha2: true, Alpha3: true}
}

// ParseFeatures parses a list of feature names. The special names "all"
// and "none" are accepted. Entries may themselves be comma-separated.
func ParseFeatures(names []string) (Features, error) {
	var f Features
	for _, entry := range names {
		for _, name := range strings.Split(entry, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			switch name {
			case "":
				continue
			case "all":
				f = AllFeatures()
			case "none":
				f = Features{}
			case FeatureCapitals:
				f.Capitals = true
			case FeatureRegions:
				f.Regions = true
			case FeatureAlpha2:
				f.Alpha2 = true
			case FeatureAlpha3:
				f.Alpha3 = true
			default:
				return Features{}, fmt.Errorf("unknown feature %q (use %s, all or none)", name, strings.Join(FeatureNames, ", "))
			}
		}
	}
	return f, nil
}

// Enabled reports whether the named feature is on.
func (f Features) Enabled(name string) bool {
	switch name {
	case FeatureCapitals:
		return f.Capitals
	case FeatureRegions:
		return f.Regions
	case FeatureAlpha2:
		return f.Alpha2
	case FeatureAlpha3:
		return f.Alpha3
	}
	return false
}

// List returns the enabled feature names in emission order.
func (f Features) List() []string {
	var out []string
	for _, name := range FeatureNames {
		if f.Enabled(name) {
			out = append(out, name)
		}
	}
	return out
}

// String implements pflag.Value.
func (f *Features) String() string {
	if f == nil {
		return ""
	}
	list := f.List()
	if len(list) == 0 {
		return "none"
	}
	return strings.Join(list, ",")
}

// Set implements pflag.Value. Each call replaces the whole selection.
func (f *Features) Set(value string) error {
	parsed, err := ParseFeatures([]string{value})
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Features) Type() string {
	return "features"
}

// UnmarshalYAML accepts a sequence of feature names or a single
// comma-separated string.
func (f *Features) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return err
		}
	case yaml.ScalarNode:
		names = []string{node.Value}
	default:
		return fmt.Errorf("line %d: features must be a list or a string", node.Line)
	}
	parsed, err := ParseFeatures(names)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*f = parsed
	return nil
}

// MarshalYAML writes the enabled features as a list.
func (f Features) MarshalYAML() (interface{}, error) {
	list := f.List()
	if list == nil {
		list = []string{}
	}
	return list, nil
}
