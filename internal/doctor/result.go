// Package doctor reports on tool presence, the package manager, privileges and PATH health
// without changing anything.
package doctor

// Status is the outcome of one check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Result is one line of the status report.
type Result struct {
	Status         Status `json:"status" yaml:"status"`
	CheckName      string `json:"check" yaml:"check"`
	Message        string `json:"message" yaml:"message"`
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// Worst returns the most severe status in results.
func Worst(results []Result) Status {
	worst := StatusOK
	for _, r := range results {
		switch r.Status {
		case StatusFail:
			return StatusFail
		case StatusWarn:
			worst = StatusWarn
		}
	}
	return worst
}
