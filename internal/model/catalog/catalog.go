package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Role is a selectable job role and the domains offered for it.
type Role struct {
	Name    string   `yaml:"name" json:"name"`
	Domains []string `yaml:"domains" json:"domains"`
}

// InterviewType is one of the fixed interview styles.
type InterviewType struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Catalog is the closed set of options offered by the setup view.
type Catalog struct {
	Roles          []Role          `yaml:"roles" json:"roles"`
	InterviewTypes []InterviewType `yaml:"interviewTypes" json:"interviewTypes"`
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

func (c Catalog) validate() error {
	if len(c.Roles) == 0 {
		return fmt.Errorf("catalog has no roles")
	}
	if len(c.InterviewTypes) == 0 {
		return fmt.Errorf("catalog has no interview types")
	}
	seen := make(map[string]struct{}, len(c.Roles))
	for _, r := range c.Roles {
		if r.Name == "" {
			return fmt.Errorf("catalog role without a name")
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("duplicate catalog role %q", r.Name)
		}
		seen[r.Name] = struct{}{}
		if len(r.Domains) == 0 {
			return fmt.Errorf("catalog role %q has no domains", r.Name)
		}
	}
	return nil
}

// FindRole looks up a role by name.
func (c Catalog) FindRole(name string) (Role, bool) {
	for _, r := range c.Roles {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}

// HasDomain reports whether domain is offered for role.
func (c Catalog) HasDomain(role, domain string) bool {
	r, ok := c.FindRole(role)
	if !ok {
		return false
	}
	for _, d := range r.Domains {
		if d == domain {
			return true
		}
	}
	return false
}

// HasInterviewType reports whether name is a known interview type.
func (c Catalog) HasInterviewType(name string) bool {
	for _, t := range c.InterviewTypes {
		if t.Name == name {
			return true
		}
	}
	return false
}
