package commands

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/Sumatoshi-tech/stylewalk/pkg/check"
	"github.com/Sumatoshi-tech/stylewalk/pkg/version"
)

// FormatSARIF selects SARIF 2.1.0 output.
const FormatSARIF = "sarif"

const informationURI = "https://github.com/Sumatoshi-tech/stylewalk"

// writeSARIF renders violations as one SARIF run. Columns become 1-based as
// SARIF requires. descriptions maps check ids to rule descriptions.
func writeSARIF(w io.Writer, violations []check.Violation, descriptions map[string]string) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("stylewalk", informationURI)
	run.Tool.Driver.WithVersion(version.Version)

	for _, v := range violations {
		rule := run.AddRule(v.RuleID)
		if desc, ok := descriptions[v.RuleID]; ok {
			rule.WithDescription(desc)
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(v.File)).
				WithRegion(sarif.NewRegion().WithStartLine(v.Line).WithStartColumn(v.Col + 1)),
		)

		run.AddResult(sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(v.Message)).
			WithLevel(sarifLevel(v.Severity)).
			WithLocations([]*sarif.Location{location}))
	}

	report.AddRun(run)

	err = report.PrettyWrite(w)
	if err != nil {
		return fmt.Errorf("write sarif report: %w", err)
	}

	return nil
}

func sarifLevel(severity check.Severity) string {
	switch severity {
	case check.SeverityError:
		return "error"
	case check.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
