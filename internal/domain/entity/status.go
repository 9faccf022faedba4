package entity

// Status is the internal lifecycle key of a suggestion. The API
// boundary exchanges the pt-BR labels instead, see LabelFor.
type Status string

const (
	StatusReceived    Status = "received"
	StatusInAnalysis  Status = "in-analysis"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusImplemented Status = "implemented"
)

var statusLabels = map[Status]string{
	StatusReceived:    "Recebido",
	StatusInAnalysis:  "Em análise",
	StatusApproved:    "Aprovada",
	StatusRejected:    "Rejeitada",
	StatusImplemented: "Implementada",
}

var AllStatuses = []Status{
	StatusReceived,
	StatusInAnalysis,
	StatusApproved,
	StatusRejected,
	StatusImplemented,
}

func IsValidStatus(s Status) bool {
	_, ok := statusLabels[s]
	return ok
}

// LabelFor is total: unknown internal values fall back to the
// "Recebido" label instead of failing.
func LabelFor(s Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusReceived]
}

// StatusFromLabel accepts either a display label ("Em análise") or an
// internal key ("in-analysis"). Returns false for anything else.
func StatusFromLabel(value string) (Status, bool) {
	for status, label := range statusLabels {
		if value == label || value == string(status) {
			return status, true
		}
	}
	return "", false
}
