package passes

import (
	"strconv"
	"strings"

	"github.com/qadapt-io/qadapt/errz"
	"github.com/qadapt-io/qadapt/ir"
	"github.com/qadapt-io/qadapt/logger"
)

// Builder constructs a pass from textual pipeline arguments.
type Builder func(args []string) (Pass, error)

// Registry maps pipeline pass names to builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry creates a registry with the built-in passes: simplify,
// always-inline, unroll(n), and nop.
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop{}
	}
	r := &Registry{builders: map[string]Builder{}}
	r.Register("simplify", func(args []string) (Pass, error) {
		if len(args) != 0 {
			return nil, errz.ConfigErrorf("pass %q takes no arguments", "simplify")
		}
		return NewSimplify(log), nil
	})
	r.Register("always-inline", func(args []string) (Pass, error) {
		if len(args) != 0 {
			return nil, errz.ConfigErrorf("pass %q takes no arguments", "always-inline")
		}
		return NewAlwaysInline(log), nil
	})
	r.Register("unroll", func(args []string) (Pass, error) {
		if len(args) != 1 {
			return nil, errz.ConfigErrorf("pass %q requires one argument", "unroll")
		}
		limit, err := strconv.Atoi(args[0])
		if err != nil || limit < 0 {
			return nil, errz.ConfigErrorf("pass %q: invalid unroll limit %q", "unroll", args[0])
		}
		return NewSimplify(log, WithUnrollLimit(limit)), nil
	})
	r.Register("nop", func(args []string) (Pass, error) {
		if len(args) != 0 {
			return nil, errz.ConfigErrorf("pass %q takes no arguments", "nop")
		}
		return NewFunc("nop", func(*ir.Module) error { return nil }), nil
	})
	return r
}

// Register adds a named pass builder.
func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

// ParsePipeline parses a textual pipeline description into passes. The
// format is a comma-separated list of pass names, each optionally
// parameterized as name(arg,...). A malformed description or unknown pass
// name is a configuration error, raised before anything runs.
func ParsePipeline(spec string, reg *Registry) ([]Pass, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var result []Pass
	for _, entry := range splitPipeline(spec) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, errz.ConfigErrorf("empty entry in pass pipeline %q", spec)
		}
		name, args, err := parseEntry(entry)
		if err != nil {
			return nil, err
		}
		builder, ok := reg.builders[name]
		if !ok {
			return nil, errz.ConfigErrorf("unknown pass %q in pipeline %q", name, spec)
		}
		pass, err := builder(args)
		if err != nil {
			return nil, err
		}
		result = append(result, pass)
	}
	return result, nil
}

// splitPipeline splits on top-level commas, leaving parenthesized argument
// lists intact.
func splitPipeline(spec string) []string {
	var entries []string
	depth := 0
	start := 0
	for i, c := range spec {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				entries = append(entries, spec[start:i])
				start = i + 1
			}
		}
	}
	entries = append(entries, spec[start:])
	return entries
}

// parseEntry splits "name" or "name(a,b)" into its parts.
func parseEntry(entry string) (string, []string, error) {
	open := strings.IndexByte(entry, '(')
	if open < 0 {
		if strings.ContainsAny(entry, ")") {
			return "", nil, errz.ConfigErrorf("malformed pipeline entry %q", entry)
		}
		return entry, nil, nil
	}
	if !strings.HasSuffix(entry, ")") {
		return "", nil, errz.ConfigErrorf("malformed pipeline entry %q", entry)
	}
	name := strings.TrimSpace(entry[:open])
	if name == "" {
		return "", nil, errz.ConfigErrorf("malformed pipeline entry %q", entry)
	}
	inner := entry[open+1 : len(entry)-1]
	if strings.TrimSpace(inner) == "" {
		return name, nil, nil
	}
	parts := strings.Split(inner, ",")
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
	}
	return name, args, nil
}
