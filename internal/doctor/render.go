package doctor

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/conn-castle/toolstrap/internal/messages"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is the machine-readable form of a status run.
type Report struct {
	Tool    string   `json:"tool" yaml:"tool"`
	Manager string   `json:"manager" yaml:"manager"`
	Status  Status   `json:"status" yaml:"status"`
	Results []Result `json:"results" yaml:"results"`
}

// NewReport wraps results with their overall status.
func NewReport(tool string, manager string, results []Result) Report {
	return Report{Tool: tool, Manager: manager, Status: Worst(results), Results: results}
}

// Render writes report to out in format.
func Render(out io.Writer, report Report, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf(messages.DoctorRenderFmt, format, err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf(messages.DoctorRenderFmt, format, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf(messages.DoctorRenderFmt, format, err)
		}
		return nil
	default:
		renderText(out, report)
		return nil
	}
}

func renderText(out io.Writer, report Report) {
	_, _ = fmt.Fprintf(out, messages.DoctorHeaderFmt, report.Tool, report.Manager)
	for _, r := range report.Results {
		printResult(out, r)
	}
	switch report.Status {
	case StatusFail:
		_, _ = fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
	case StatusWarn:
		_, _ = fmt.Fprintln(out, color.YellowString(messages.DoctorWarnSummary))
	default:
		_, _ = fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
	}
}

func printResult(out io.Writer, r Result) {
	var status string
	switch r.Status {
	case StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		printRecommendation(out, r.Recommendation)
	}
}

// printRecommendation renders a multi-line recommendation with consistent indentation.
func printRecommendation(out io.Writer, recommendation string) {
	for i, line := range strings.Split(recommendation, "\n") {
		switch {
		case i == 0:
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationPrefix, line)
		case line == "":
			_, _ = fmt.Fprintf(out, "%s\n", messages.DoctorRecommendationIndent)
		default:
			_, _ = fmt.Fprintf(out, "%s%s\n", messages.DoctorRecommendationIndent, line)
		}
	}
}
