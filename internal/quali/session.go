package quali

// SessionInfo identifies a loaded session. Only the provider constructs
// one; the comparator borrows it for the duration of a single request.
type SessionInfo struct {
	Year        int
	Race        string
	SessionCode string
	EventName   string
	CircuitName string
}

// SessionCodes is the set of session identifiers a comparison accepts:
// the qualifying family plus the sprint variants.
var SessionCodes = map[string]bool{
	"Q":  true,
	"Q1": true,
	"Q2": true,
	"Q3": true,
	"SQ": true,
	"S":  true,
}
