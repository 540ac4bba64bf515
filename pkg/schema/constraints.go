package schema

import (
	"regexp"
)

// StringConstraints bound free-text answers. MinLength and MaxLength are
// inclusive byte lengths; Regexp must match the whole answer, not a
// substring of it.
type StringConstraints struct {
	MinLength *int   `yaml:"min_length,omitempty"`
	MaxLength *int   `yaml:"max_length,omitempty"`
	Regexp    string `yaml:"regex,omitempty"`

	pattern *regexp.Regexp
}

// MatchString reports whether value satisfies the regex constraint.
// Fields without a regex accept everything. The pattern normally compiles
// during Validate; trees that bypassed validation compile lazily here and
// surface compile errors.
func (c *StringConstraints) MatchString(value string) (bool, error) {
	if c.Regexp == "" {
		return true, nil
	}
	if c.pattern == nil {
		if err := c.compile(); err != nil {
			return false, err
		}
	}
	return c.pattern.MatchString(value), nil
}

// compile validates the authored expression and caches a variant anchored
// to the whole string.
func (c *StringConstraints) compile() error {
	if _, err := regexp.Compile(c.Regexp); err != nil {
		return err
	}
	c.pattern = regexp.MustCompile("^(?:" + c.Regexp + ")$")
	return nil
}

func (c *StringConstraints) empty() bool {
	return c.MinLength == nil && c.MaxLength == nil && c.Regexp == ""
}

// NumberConstraints bound int and float answers inclusively.
type NumberConstraints struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

func (c *NumberConstraints) empty() bool {
	return c.Min == nil && c.Max == nil
}

// CollectionConstraints bound how many entries a list collects or how
// many items a multiselect accepts.
type CollectionConstraints struct {
	MinItems *int `yaml:"min_items,omitempty"`
	MaxItems *int `yaml:"max_items,omitempty"`
}

func (c *CollectionConstraints) empty() bool {
	return c.MinItems == nil && c.MaxItems == nil
}
