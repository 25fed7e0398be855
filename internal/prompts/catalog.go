// Package prompts provides the versioned prompt catalog and the composer
// that binds style guide values into a selected template version.
package prompts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentAlias is the version name that resolves through the catalog's
// current-version pointer. Any other name is treated as a literal key.
const CurrentAlias = "current"

// Version holds one template pair. Either half may be empty; a version is
// only unusable when both are.
type Version struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// Catalog is the versioned collection of prompt templates with a designated
// current version. Loaded once at startup and read-only afterwards.
type Catalog struct {
	Current  string             `yaml:"current"`
	Versions map[string]Version `yaml:"versions"`
}

// LoadCatalog reads a prompt catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogError{Message: fmt.Sprintf("failed to read prompt catalog %s", path), Cause: err}
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a prompt catalog from YAML bytes and checks that the
// current pointer keys into the version map.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, &CatalogError{Message: "failed to parse prompt catalog YAML", Cause: err}
	}

	if cat.Current == "" {
		return nil, &CatalogError{Message: "prompt catalog has no current version pointer"}
	}
	if len(cat.Versions) == 0 {
		return nil, &CatalogError{Message: "prompt catalog has no versions"}
	}
	if _, ok := cat.Versions[cat.Current]; !ok {
		return nil, &CatalogError{Message: fmt.Sprintf("current version %q is not in the catalog", cat.Current)}
	}

	return &cat, nil
}

// Resolve maps a requested version name to a concrete catalog entry.
// The name "current" follows the catalog pointer; anything else is looked up
// literally. Unknown keys fail with VersionNotFoundError.
func (c *Catalog) Resolve(version string) (string, Version, error) {
	name := version
	if name == CurrentAlias {
		name = c.Current
	}

	v, ok := c.Versions[name]
	if !ok {
		return "", Version{}, &VersionNotFoundError{Version: name}
	}
	return name, v, nil
}
