// Package catalog describes the demo applications a process can serve.
package catalog

import (
	"embed"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"crudkit/internal/config"
)

//go:embed apps/*.yaml
var manifests embed.FS

type App struct {
	Name        string     `yaml:"name"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Version     string     `yaml:"version"`
	Resources   []Resource `yaml:"resources"`
}

// Resource is one CRUD collection of an app.
type Resource struct {
	// Name is the URL path segment, e.g. "tasks".
	Name string `yaml:"name"`
	// Kind selects the entity type registered for the resource.
	Kind string `yaml:"kind"`
	// Entity is the display name used in response messages.
	Entity  string   `yaml:"entity"`
	Tag     string   `yaml:"tag"`
	Aliases []string `yaml:"aliases"`
}

// Paths returns the canonical path segment followed by any aliases.
func (r Resource) Paths() []string {
	return append([]string{r.Name}, r.Aliases...)
}

var segment = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

func Parse(data []byte) (*App, error) {
	var app App
	if err := yaml.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (a *App) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if len(a.Resources) == 0 {
		return fmt.Errorf("manifest %s: at least one resource is required", a.Name)
	}
	seen := make(map[string]struct{})
	for i, res := range a.Resources {
		if res.Kind == "" || res.Entity == "" {
			return fmt.Errorf("manifest %s: resource %d needs kind and entity", a.Name, i)
		}
		for _, p := range res.Paths() {
			if !segment.MatchString(p) {
				return fmt.Errorf("manifest %s: invalid resource path %q", a.Name, p)
			}
			if _, dup := seen[p]; dup {
				return fmt.Errorf("manifest %s: duplicate resource path %q", a.Name, p)
			}
			seen[p] = struct{}{}
		}
	}
	return nil
}

// Load returns the embedded manifest with the given name.
func Load(name string) (*App, error) {
	data, err := manifests.ReadFile(path.Join("apps", strings.ToLower(name)+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown app %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return Parse(data)
}

// FromConfig loads the app selected by APP_NAME.
func FromConfig(cfg *config.Config) (*App, error) {
	return Load(cfg.AppName)
}

func Names() []string {
	entries, err := manifests.ReadDir("apps")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
