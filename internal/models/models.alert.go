package models

import "fmt"

// Severity orders alerts; higher values are more severe.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "INFO",
	SeverityWarning:  "WARNING",
	SeverityCritical: "CRITICAL",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	for sev, name := range severityNames {
		if name == string(text) {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", text)
}

type Alert struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}
