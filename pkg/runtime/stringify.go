package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Stringify renders a value the way print shows it: strings appear bare
// at the top level and quoted inside collections.
func Stringify(val Value) string {
	return render(val, false)
}

// Inspect renders a value with strings quoted everywhere, suitable for
// diagnostics and test output.
func Inspect(val Value) string {
	return render(val, true)
}

func render(val Value, quoted bool) string {
	switch v := val.(type) {
	case NilValue:
		return "nil"
	case BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case IntValue:
		return strconv.FormatInt(v.Val, 10)
	case FloatValue:
		return formatFloat(v.Val)
	case StringValue:
		if quoted {
			return strconv.Quote(v.Val)
		}
		return v.Val
	case *ListValue:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = render(el, true)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *MapValue:
		parts := make([]string, 0, v.Len())
		for _, key := range v.Keys() {
			entry, _ := v.Get(key)
			parts = append(parts, key+": "+render(entry, true))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case RangeValue:
		return fmt.Sprintf("range(%d, %d)", v.Start, v.End)
	case OptionValue:
		if !v.IsSome {
			return "None"
		}
		return "Some(" + render(v.Payload, true) + ")"
	case ResultValue:
		if v.IsOk {
			return "Ok(" + render(v.Payload, true) + ")"
		}
		return "Err(" + render(v.Payload, true) + ")"
	case *FunctionValue:
		return "<fn " + v.Name + ">"
	case NativeFunctionValue:
		return "<builtin " + v.Name + ">"
	case *StrandHandleValue:
		return "<strand>"
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}

// formatFloat keeps a trailing ".0" on integral floats so the result
// still reads as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}
