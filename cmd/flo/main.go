package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"flo/interpreter-go/pkg/driver"
	"flo/interpreter-go/pkg/runtime"
)

const cliToolVersion = "flo-cli 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	opts := driver.Options{Out: os.Stdout}
	level := zerolog.InfoLevel
	asJSON := false
	var target string
	for _, arg := range args {
		switch arg {
		case "--serial":
			opts.Executor = driver.ExecutorSerial
		case "--json":
			asJSON = true
		case "--debug":
			level = zerolog.DebugLevel
		default:
			if target != "" {
				fmt.Fprintln(os.Stderr, "flo run accepts at most one module file")
				return 1
			}
			target = arg
		}
	}
	log := newLogger(level)

	var result *driver.Result
	var err error
	if target != "" {
		log.Debug().Str("module", target).Msg("running module file")
		result, err = driver.RunModuleFile(target, opts)
	} else {
		var manifestPath string
		manifestPath, err = driver.DiscoverManifest(".")
		if err != nil {
			log.Error().Err(err).Msg("no module file given and no manifest found")
			return 1
		}
		log.Debug().Str("manifest", manifestPath).Msg("running manifest entry")
		result, err = driver.RunManifest(manifestPath, opts)
	}
	if err != nil {
		if rerr, ok := err.(*runtime.Error); ok {
			event := log.Error().Str("kind", string(rerr.Kind))
			if rerr.Line > 0 {
				event = event.Int("line", rerr.Line).Int("column", rerr.Column)
			}
			event.Msg(rerr.Message)
		} else {
			log.Error().Err(err).Msg("run failed")
		}
		return 1
	}

	for _, name := range result.UngrantedRequests() {
		log.Warn().Str("capability", name).Msg("capability requested but not granted in manifest")
	}

	if asJSON {
		encoded, merr := json.Marshal(valueToJSON(result.Value))
		if merr != nil {
			log.Error().Err(merr).Msg("encode result")
			return 1
		}
		fmt.Fprintln(os.Stdout, string(encoded))
		return 0
	}
	if _, ok := result.Value.(runtime.NilValue); !ok {
		fmt.Fprintln(os.Stdout, runtime.Stringify(result.Value))
	}
	return 0
}

// valueToJSON maps a runtime value onto plain Go data for JSON output.
// Values with no natural JSON shape fall back to their printed form.
func valueToJSON(val runtime.Value) any {
	switch v := val.(type) {
	case runtime.NilValue:
		return nil
	case runtime.BoolValue:
		return v.Val
	case runtime.IntValue:
		return v.Val
	case runtime.FloatValue:
		return v.Val
	case runtime.StringValue:
		return v.Val
	case *runtime.ListValue:
		items := make([]any, len(v.Elements))
		for i, el := range v.Elements {
			items[i] = valueToJSON(el)
		}
		return items
	case *runtime.MapValue:
		obj := make(map[string]any, v.Len())
		for _, key := range v.Keys() {
			entry, _ := v.Get(key)
			obj[key] = valueToJSON(entry)
		}
		return obj
	case runtime.OptionValue:
		if !v.IsSome {
			return map[string]any{"variant": "None"}
		}
		return map[string]any{"variant": "Some", "value": valueToJSON(v.Payload)}
	case runtime.ResultValue:
		variant := "Ok"
		if !v.IsOk {
			variant = "Err"
		}
		return map[string]any{"variant": variant, "value": valueToJSON(v.Payload)}
	default:
		return runtime.Stringify(val)
	}
}

func newLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: flo <command> [arguments]

commands:
  run [module.json]   run a module JSON file, or the manifest entry when omitted
  version             print the CLI version

flags:
  --serial            run strands synchronously at spawn time
  --json              print the final value as JSON
  --debug             verbose diagnostics`)
}
