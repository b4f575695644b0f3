package suppress

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/stylewalk/pkg/query"
)

//go:embed suppressions.schema.json
var schemaJSON []byte

// Document is the on-disk form of a suppression file.
type Document struct {
	Suppressions []RawEntry `yaml:"suppressions"`
}

// RawEntry is one undecoded suppression entry. Exactly one of Query, Lines
// or Message is set; Columns requires Lines.
type RawEntry struct {
	Checks  string `yaml:"checks,omitempty"`
	Files   string `yaml:"files,omitempty"`
	Query   string `yaml:"query,omitempty"`
	Lines   string `yaml:"lines,omitempty"`
	Columns string `yaml:"columns,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// Load reads and compiles a suppression file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suppressions %s: %w", path, err)
	}

	return Parse(data)
}

// Parse validates data against the suppression schema and compiles every
// entry. Any malformed entry fails the whole document.
func Parse(data []byte) (*Set, error) {
	var generic any

	err := yaml.Unmarshal(data, &generic)
	if err != nil {
		return nil, &ConfigError{Index: -1, Field: "document", Err: fmt.Errorf("%w: %w", errSchema, err)}
	}

	if generic == nil {
		return NewSet(), nil
	}

	err = validateSchema(generic)
	if err != nil {
		return nil, err
	}

	var doc Document

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, &ConfigError{Index: -1, Field: "document", Err: fmt.Errorf("%w: %w", errSchema, err)}
	}

	return Compile(doc.Suppressions)
}

func validateSchema(data any) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(data))
	if err != nil {
		return &ConfigError{Index: -1, Field: "document", Err: fmt.Errorf("%w: %w", errSchema, err)}
	}

	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))

	for _, verr := range result.Errors() {
		errs = append(errs, &ConfigError{
			Index: entryIndex(verr.Field()),
			Field: verr.Field(),
			Err:   fmt.Errorf("%w: %s", errSchema, verr.Description()),
		})
	}

	return errors.Join(errs...)
}

// entryIndex extracts N from a schema field path such as "suppressions.N.lines".
func entryIndex(field string) int {
	parts := strings.Split(field, ".")
	if len(parts) < 2 || parts[0] != "suppressions" {
		return -1
	}

	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}

	return idx
}

// Compile turns raw entries into a [Set], in order.
func Compile(raw []RawEntry) (*Set, error) {
	entries := make([]Entry, 0, len(raw))

	for idx, r := range raw {
		entry, err := compileEntry(idx, r)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return NewSet(entries...), nil
}

func compileEntry(idx int, r RawEntry) (Entry, error) {
	filter, err := compileFilter(idx, r)
	if err != nil {
		return nil, err
	}

	criteria := 0

	for _, v := range []string{r.Query, r.Lines, r.Message} {
		if v != "" {
			criteria++
		}
	}

	if criteria != 1 {
		return nil, &ConfigError{Index: idx, Field: "entry", Err: errNoCriterion}
	}

	if r.Columns != "" && r.Lines == "" {
		return nil, &ConfigError{Index: idx, Field: "columns", Err: errColumnsAlone}
	}

	switch {
	case r.Query != "":
		q, qerr := query.Compile(r.Query)
		if qerr != nil {
			return nil, &ConfigError{Index: idx, Field: "query", Err: fmt.Errorf("%w: %w", errBadQuery, qerr)}
		}

		return &QueryEntry{Filter: filter, Query: q}, nil
	case r.Lines != "":
		return compileLocation(idx, filter, r)
	default:
		message, rerr := regexp.Compile(r.Message)
		if rerr != nil {
			return nil, &ConfigError{Index: idx, Field: "message", Err: fmt.Errorf("%w: %w", errBadPattern, rerr)}
		}

		return &MessageEntry{Filter: filter, Message: message}, nil
	}
}

func compileLocation(idx int, filter Filter, r RawEntry) (Entry, error) {
	lines, err := ParseRanges(r.Lines)
	if err != nil {
		return nil, &ConfigError{Index: idx, Field: "lines", Err: err}
	}

	entry := &LocationEntry{Filter: filter, Lines: lines}

	if r.Columns != "" {
		entry.Columns, err = ParseRanges(r.Columns)
		if err != nil {
			return nil, &ConfigError{Index: idx, Field: "columns", Err: err}
		}
	}

	return entry, nil
}

func compileFilter(idx int, r RawEntry) (Filter, error) {
	var filter Filter

	for _, f := range []struct {
		field  string
		source string
		target **regexp.Regexp
	}{
		{"checks", r.Checks, &filter.Checks},
		{"files", r.Files, &filter.Files},
	} {
		if f.source == "" {
			continue
		}

		re, err := regexp.Compile(f.source)
		if err != nil {
			return Filter{}, &ConfigError{Index: idx, Field: f.field, Err: fmt.Errorf("%w: %w", errBadPattern, err)}
		}

		*f.target = re
	}

	return filter, nil
}

// Marshal renders entries back to the suppression file format.
func Marshal(raw []RawEntry) ([]byte, error) {
	out, err := yaml.Marshal(Document{Suppressions: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal suppressions: %w", err)
	}

	return out, nil
}
