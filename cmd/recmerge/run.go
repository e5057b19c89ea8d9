package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/hkloudou/recmerge"
	"github.com/hkloudou/recmerge/internal/trace"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/pretty"
)

type op string

const (
	opBy     op = "by"
	opLinear op = "linear"
)

var errUsage = errors.New("invalid arguments")

type options struct {
	Op       op
	Key      string
	Path     bool
	Strategy string
	YAML     bool
	Pretty   bool
	Color    string
	Verbose  bool
	Trace    bool
}

func (o options) keyResolver() (recmerge.KeyResolver, error) {
	if o.Key == "" {
		return nil, fmt.Errorf("%w: -key is required", errUsage)
	}
	if !o.Path {
		return recmerge.Field(o.Key), nil
	}
	key, err := recmerge.ParsePath(o.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	return key, nil
}

// colorize decides json output color. Auto colors only a terminal;
// yaml output is never colored.
func (o options) colorize(out io.Writer) (bool, error) {
	switch o.Color {
	case "", "auto":
		return !o.YAML && isTerminal(out), nil
	case "always":
		return !o.YAML, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("%w: unknown color mode %q", errUsage, o.Color)
	}
}

func (o options) mergeFunc() (recmerge.MergeFunc, error) {
	switch o.Strategy {
	case "", "earlier":
		return recmerge.KeepEarlier, nil
	case "later":
		return recmerge.KeepLater, nil
	case "patch":
		return recmerge.MergePatch, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", errUsage, o.Strategy)
	}
}

// run reads records from in, merges them and writes the result to out.
// Trace output goes to diag.
func run(ctx context.Context, o options, in io.Reader, out, diag io.Writer) error {
	key, err := o.keyResolver()
	if err != nil {
		return err
	}
	fn, err := o.mergeFunc()
	if err != nil {
		return err
	}
	colorize, err := o.colorize(out)
	if err != nil {
		return err
	}
	if o.Trace {
		ctx = trace.WithTrace(ctx, string(o.Op))
	}
	tr := trace.FromContext(ctx)

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	tr.RecordSpan("read", 0)

	records, err := decode(data, o.YAML)
	if err != nil {
		return err
	}
	tr.RecordSpan("decode", len(records))

	var merged []recmerge.Record
	switch o.Op {
	case opBy:
		merged, err = recmerge.MergeBy(records, key)
	case opLinear:
		merged, err = recmerge.LinearMerge(records, key, recmerge.WithMergeFunc(fn))
	default:
		return fmt.Errorf("%w: unknown operation %q", errUsage, o.Op)
	}
	if err != nil {
		return fmt.Errorf("%s merge failed: %w", o.Op, err)
	}
	tr.RecordSpan("merge", len(merged))
	if o.Verbose {
		log.Printf("[recmerge %s] key=%s records: %d -> %d", o.Op, o.Key, len(records), len(merged))
	}

	encoded, err := encode(merged, o.YAML, o.Pretty, colorize)
	if err != nil {
		return err
	}
	if _, err := out.Write(encoded); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	tr.RecordSpan("encode", len(merged))

	tr.Fdump(diag, isTerminal(diag))
	return nil
}

func decode(data []byte, fromYAML bool) ([]recmerge.Record, error) {
	if fromYAML {
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert yaml input: %w", err)
		}
		data = converted
	}
	records, err := recmerge.ParseRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return records, nil
}

func encode(records []recmerge.Record, toYAML, indent, colorize bool) ([]byte, error) {
	data, err := recmerge.EncodeRecords(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	if toYAML {
		converted, err := yaml.JSONToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert output to yaml: %w", err)
		}
		return converted, nil
	}
	if indent {
		data = pretty.Pretty(data)
	} else {
		data = append(data, '\n')
	}
	if colorize {
		data = pretty.Color(data, nil)
	}
	return data, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
