package domain

// Severity grades how urgent a deadline is for presentation.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityWarn   Severity = "warn"
	SeverityDanger Severity = "danger"
	SeverityError  Severity = "error"
)

func (s Severity) String() string {
	return string(s)
}

// Color returns the hex color token used to render s.
func (s Severity) Color() string {
	switch s {
	case SeverityWarn:
		return "#EAB308"
	case SeverityDanger:
		return "#F97316"
	case SeverityError:
		return "#EF4444"
	default:
		return "#3B82F6"
	}
}

func (s Severity) IsError() bool {
	return s == SeverityError
}
