package card

import "strings"

// Context is the ambient state a registry evaluates visibility against.
// The zero value is a valid context with no roles, categories or entity data.
type Context struct {
	Roles      map[string]bool
	Categories map[string]bool
	Entity     map[string]string
}

// NewContext builds a Context from role and category names.
// Names are lowercased and trimmed; empty names are ignored.
func NewContext(roles, categories []string) Context {
	return Context{
		Roles:      flagSet(roles),
		Categories: flagSet(categories),
	}
}

// WithEntity returns a copy of c with key set to value in the entity data.
func (c Context) WithEntity(key, value string) Context {
	entity := make(map[string]string, len(c.Entity)+1)
	for k, v := range c.Entity {
		entity[k] = v
	}
	entity[key] = value
	c.Entity = entity
	return c
}

// HasRole reports whether the role flag is set.
func (c Context) HasRole(role string) bool {
	return c.Roles[normalize(role)]
}

// HasAnyRole reports whether any of the role flags is set.
func (c Context) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// HasCategory reports whether the category flag is set.
func (c Context) HasCategory(category string) bool {
	return c.Categories[normalize(category)]
}

// Value returns entity data by key, or "" when absent.
func (c Context) Value(key string) string {
	return c.Entity[key]
}

func flagSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n = normalize(n); n != "" {
			set[n] = true
		}
	}
	return set
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
