package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up by discovery.
const ManifestFileName = "flo.yml"

// Manifest represents the parsed contents of flo.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Entry        string
	Executor     ExecutorKind
	Capabilities []CapabilitySpec
}

// ExecutorKind selects the strand scheduler for the program.
type ExecutorKind string

const (
	ExecutorGoroutine ExecutorKind = "goroutine"
	ExecutorSerial    ExecutorKind = "serial"
)

// CapabilitySpec declares a capability the program intends to use. The
// core does not enforce capabilities; declarations are surfaced to the
// host so it can warn or deny.
type CapabilitySpec struct {
	Name string
	Type string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type manifestFile struct {
	Name         string               `yaml:"name"`
	Version      string               `yaml:"version"`
	Entry        string               `yaml:"entry"`
	Executor     string               `yaml:"executor"`
	Capabilities []capabilityFileSpec `yaml:"capabilities"`
}

type capabilityFileSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadManifest parses flo.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (raw manifestFile) toManifest(path string) *Manifest {
	executor := ExecutorKind(raw.Executor)
	if executor == "" {
		executor = ExecutorGoroutine
	}
	caps := make([]CapabilitySpec, 0, len(raw.Capabilities))
	for _, c := range raw.Capabilities {
		caps = append(caps, CapabilitySpec{Name: c.Name, Type: c.Type})
	}
	return &Manifest{
		Path:         path,
		Name:         raw.Name,
		Version:      raw.Version,
		Entry:        raw.Entry,
		Executor:     executor,
		Capabilities: caps,
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry == "" {
		errs.Issues = append(errs.Issues, "entry must point at a module JSON file")
	}
	switch m.Executor {
	case ExecutorGoroutine, ExecutorSerial:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("executor %q is not one of %q, %q", m.Executor, ExecutorGoroutine, ExecutorSerial))
	}
	for i, c := range m.Capabilities {
		if c.Name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("capabilities[%d] must have a name", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// EntryPath resolves the entry file relative to the manifest location.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(filepath.Dir(m.Path), m.Entry)
}

// DiscoverManifest walks upward from dir looking for flo.yml.
func DiscoverManifest(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("manifest: no %s found in %s or any parent", ManifestFileName, dir)
		}
		abs = parent
	}
}
