package vocab

import "strings"

// BlankPrefix marks an explicit blank-node reference such as "_:N1A1_mass".
const BlankPrefix = "_:"

// Resolve maps a name to the token emitted in Turtle and an optional label
// kept as a human-readable comment. An empty label means none.
//
// The checks run in a fixed order: "type" always yields "a"; a vocabulary
// entry yields its code, labelled unless the code is locally scoped (":")
// or a unit ("unit:"); an explicit blank-node reference passes through;
// anything else becomes a locally scoped ":name".
func (c *Context) Resolve(name string) (token, label string) {
	if name == TypePredicate {
		return "a", ""
	}
	if code, ok := c.IDs[name]; ok {
		if strings.HasPrefix(code, ":") || strings.HasPrefix(code, "unit:") {
			return code, ""
		}
		return code, name
	}
	if strings.HasPrefix(name, BlankPrefix) {
		return name, ""
	}
	return ":" + name, ""
}

// Lookup returns the merged vocabulary code for name.
func (c *Context) Lookup(name string) (string, bool) {
	code, ok := c.IDs[name]
	return code, ok
}

// ShortLabel returns the shortened display label for name, if any.
func (c *Context) ShortLabel(name string) (string, bool) {
	s, ok := c.Short[name]
	return s, ok
}

// IsDataProperty reports whether name is declared in the data properties table.
func (c *Context) IsDataProperty(name string) bool {
	_, ok := c.DataProperties[name]
	return ok
}

// IsReverse reports whether edges for name are drawn reversed.
func (c *Context) IsReverse(name string) bool {
	return c.Reverse[name]
}

// IsLoose reports whether edges for name are excluded from rank constraints.
func (c *Context) IsLoose(name string) bool {
	return c.Loose[name]
}
