package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/config"
	"github.com/Sumatoshi-tech/stylewalk/pkg/parser"
)

const maxCellText = 40

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func newParser(cfg *config.Config) (*parser.Parser, error) {
	opts := []parser.Option{parser.WithTabWidth(cfg.TabWidth)}

	if cfg.Language != "" {
		lang, err := parser.Lookup(cfg.Language)
		if err != nil {
			return nil, err
		}

		opts = append(opts, parser.WithLanguage(lang))
	}

	return parser.New(opts...), nil
}

// parseFile reads and parses one file with the parser settings of the
// config at configPath.
func parseFile(ctx context.Context, configPath, path string) (*parser.File, *config.Config, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	p, err := newParser(cfg)
	if err != nil {
		return nil, nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	file, err := p.Parse(ctx, path, content)
	if err != nil {
		return nil, nil, err
	}

	return file, cfg, nil
}

func writeViolations(w io.Writer, violations []check.Violation, format string, noColor bool) error {
	if format == FormatJSON {
		if violations == nil {
			violations = []check.Violation{}
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(violations)
		if err != nil {
			return fmt.Errorf("encode violations: %w", err)
		}

		return nil
	}

	painters := severityPainters(noColor)

	for _, v := range violations {
		fmt.Fprintf(w, "%s:%d:%d: [%s] %s (%s)\n",
			v.File, v.Line, v.Col, painters[v.Severity].Sprint(v.Severity), v.Message, v.RuleID)
	}

	return nil
}

func severityPainters(noColor bool) map[check.Severity]*color.Color {
	painters := map[check.Severity]*color.Color{
		check.SeverityInfo:    color.New(color.FgCyan),
		check.SeverityWarning: color.New(color.FgYellow),
		check.SeverityError:   color.New(color.FgRed, color.Bold),
	}

	if noColor {
		for _, c := range painters {
			c.DisableColor()
		}
	}

	return painters
}

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)

	return t
}

// cellText shortens node text to one line for table cells.
func cellText(text string) string {
	text = strings.ReplaceAll(text, "\n", `\n`)
	text = strings.ReplaceAll(text, "\t", `\t`)

	runes := []rune(text)
	if len(runes) > maxCellText {
		return string(runes[:maxCellText-1]) + "…"
	}

	return text
}
