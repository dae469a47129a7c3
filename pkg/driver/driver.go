package driver

import (
	"fmt"
	"io"
	"os"

	"flo/interpreter-go/pkg/ast"
	"flo/interpreter-go/pkg/interpreter"
	"flo/interpreter-go/pkg/runtime"
)

// Options configures a program run.
type Options struct {
	// Out receives program print output. Defaults to os.Stdout.
	Out io.Writer
	// Executor overrides the manifest's executor choice when non-empty.
	Executor ExecutorKind
}

// Result is the outcome of running a module to completion.
type Result struct {
	Value    runtime.Value
	Manifest *Manifest
	// Requests lists the capabilities the program asked for, in source
	// order. The evaluator treats requests as no-ops; the host decides
	// how to react to ungranted ones.
	Requests []string
}

// RunManifest loads the manifest at path and executes its entry module.
func RunManifest(path string, opts Options) (*Result, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	result, err := runModuleFile(manifest.EntryPath(), pickExecutor(manifest, opts), opts.Out)
	if err != nil {
		return nil, err
	}
	result.Manifest = manifest
	return result, nil
}

// RunModuleFile executes a standalone module JSON file with no manifest.
func RunModuleFile(path string, opts Options) (*Result, error) {
	executor := opts.Executor
	if executor == "" {
		executor = ExecutorGoroutine
	}
	return runModuleFile(path, executor, opts.Out)
}

// UngrantedRequests reports requested capabilities the manifest does not
// grant. Without a manifest every request is ungranted.
func (r *Result) UngrantedRequests() []string {
	granted := make(map[string]bool)
	if r.Manifest != nil {
		for _, c := range r.Manifest.Capabilities {
			granted[c.Name] = true
		}
	}
	var missing []string
	for _, name := range r.Requests {
		if !granted[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func pickExecutor(manifest *Manifest, opts Options) ExecutorKind {
	if opts.Executor != "" {
		return opts.Executor
	}
	return manifest.Executor
}

func runModuleFile(path string, executor ExecutorKind, out io.Writer) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: read module %s: %w", path, err)
	}
	module, err := ast.DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("driver: %s: %w", path, err)
	}
	if out == nil {
		out = os.Stdout
	}
	interp := interpreter.NewWith(newExecutor(executor), out)
	value, _, err := interp.EvaluateModule(module)
	if err != nil {
		return nil, err
	}
	// Strands spawned but never awaited still run to completion before
	// the program exits.
	interp.Executor().Wait()
	return &Result{Value: value, Requests: capabilityRequests(module)}, nil
}

func capabilityRequests(module *ast.Module) []string {
	var requests []string
	for _, stmt := range module.Statements {
		if req, ok := stmt.(*ast.CapabilityRequest); ok {
			requests = append(requests, req.Capability)
		}
	}
	return requests
}

func newExecutor(kind ExecutorKind) interpreter.Executor {
	if kind == ExecutorSerial {
		return interpreter.NewSerialExecutor()
	}
	return interpreter.NewGoroutineExecutor()
}
