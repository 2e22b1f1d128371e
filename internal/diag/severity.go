package diag

// Severity orders parse findings. Only SevError stops a parse; the others
// are printed and the check goes on.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError // the diagram could not be modelled
)

// String is the label used by FormatShort and the reporters.
func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	case SevInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}
