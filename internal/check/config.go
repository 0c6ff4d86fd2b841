// Package check prepares and runs one comparison of two JSON documents: it
// resolves the run configuration, loads the inputs (fresh files or a saved
// result) and collects the requested categories of differences.
package check

import (
	"errors"
	"fmt"
)

var (
	// ErrNoChecks is returned when no category of difference was requested.
	ErrNoChecks = errors.New("select at least one of key, type, value or array differences")
	// ErrNoInput is returned when neither two files nor a saved result were given.
	ErrNoInput = errors.New("provide two files to check or a saved result to read")
	// ErrConflictingInput is returned when files and a saved result are both given.
	ErrConflictingInput = errors.New("files to check and a saved result are mutually exclusive")
	// ErrNoOutput is returned when writing a saved result without a destination.
	ErrNoOutput = errors.New("no output file configured")
)

// Category is one kind of difference.
type Category int

const (
	Keys Category = iota
	Types
	Values
	Arrays
)

// Categories lists every category in rendering order.
var Categories = []Category{Keys, Types, Values, Arrays}

func (c Category) String() string {
	switch c {
	case Keys:
		return "key"
	case Types:
		return "type"
	case Values:
		return "value"
	case Arrays:
		return "array"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Title is the heading used for the category's table.
func (c Category) Title() string {
	switch c {
	case Keys:
		return "Key Differences"
	case Types:
		return "Type Differences"
	case Values:
		return "Value Differences"
	case Arrays:
		return "Array Differences"
	}
	return c.String()
}

// Config holds the runtime configuration of a check.
type Config struct {
	CheckKeys   bool
	CheckTypes  bool
	CheckValues bool
	CheckArrays bool

	RenderKeys   bool
	RenderTypes  bool
	RenderValues bool
	RenderArrays bool

	ReadFromFile string
	WriteToFile  string
	WriteToHTML  string

	FileA          string
	FileB          string
	ArraySameOrder bool
	Label          string
}

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig builds a Config from opts. Categories that are checked are also
// rendered unless a Render option says otherwise.
func NewConfig(opts ...Option) Config {
	var c Config
	for _, o := range opts {
		o(&c)
	}
	if !c.rendersAny() {
		c.RenderKeys, c.RenderTypes, c.RenderValues, c.RenderArrays = c.CheckKeys, c.CheckTypes, c.CheckValues, c.CheckArrays
	}
	return c
}

// WithChecks selects the categories to compute.
func WithChecks(keys, types, values, arrays bool) Option {
	return func(c *Config) {
		c.CheckKeys, c.CheckTypes, c.CheckValues, c.CheckArrays = keys, types, values, arrays
	}
}

// WithRender selects the categories to display.
func WithRender(keys, types, values, arrays bool) Option {
	return func(c *Config) {
		c.RenderKeys, c.RenderTypes, c.RenderValues, c.RenderArrays = keys, types, values, arrays
	}
}

// WithFiles sets the two documents to compare.
func WithFiles(a, b string) Option {
	return func(c *Config) { c.FileA, c.FileB = a, b }
}

// WithSavedResult loads a previously written result instead of comparing files.
func WithSavedResult(path string) Option {
	return func(c *Config) { c.ReadFromFile = path }
}

// WithOutputFile writes the result as JSON instead of rendering tables.
func WithOutputFile(path string) Option {
	return func(c *Config) { c.WriteToFile = path }
}

// WithHTMLFile writes an HTML report instead of rendering tables.
func WithHTMLFile(path string) Option {
	return func(c *Config) { c.WriteToHTML = path }
}

// WithArraySameOrder compares arrays element by element.
func WithArraySameOrder(v bool) Option {
	return func(c *Config) { c.ArraySameOrder = v }
}

// WithLabel names the check in history.
func WithLabel(label string) Option {
	return func(c *Config) { c.Label = label }
}

// Validate checks that the configuration describes a runnable check.
func (c Config) Validate() error {
	hasFiles := c.FileA != "" || c.FileB != ""
	switch {
	case hasFiles && c.ReadFromFile != "":
		return ErrConflictingInput
	case c.ReadFromFile != "":
		return nil
	case c.FileA == "" || c.FileB == "":
		return ErrNoInput
	}
	if !c.ChecksAny() {
		return ErrNoChecks
	}
	return nil
}

// ChecksAny reports whether any category is computed.
func (c Config) ChecksAny() bool {
	return c.CheckKeys || c.CheckTypes || c.CheckValues || c.CheckArrays
}

func (c Config) rendersAny() bool {
	return c.RenderKeys || c.RenderTypes || c.RenderValues || c.RenderArrays
}

// Checks reports whether category cat is computed.
func (c Config) Checks(cat Category) bool {
	switch cat {
	case Keys:
		return c.CheckKeys
	case Types:
		return c.CheckTypes
	case Values:
		return c.CheckValues
	case Arrays:
		return c.CheckArrays
	}
	return false
}

// Renders reports whether category cat is displayed.
func (c Config) Renders(cat Category) bool {
	switch cat {
	case Keys:
		return c.RenderKeys
	case Types:
		return c.RenderTypes
	case Values:
		return c.RenderValues
	case Arrays:
		return c.RenderArrays
	}
	return false
}

// IsSavedRun reports whether the check re-uses a saved result.
func (c Config) IsSavedRun() bool { return c.ReadFromFile != "" }
