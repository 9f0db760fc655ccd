package classify

import "github.com/dcamposl/uniwabot-go/internal/department"

// MatchKeyword checks the message against every department's keyword
// list in catalog order. The first department with any keyword present
// wins, so catalog order is the precedence order. Matching is case and
// accent insensitive.
func MatchKeyword(message string) (department.Code, bool) {
	folded := department.Fold(message)
	for _, d := range department.All() {
		for _, kw := range d.Keywords {
			if department.ContainsFolded(folded, kw) {
				return d.Code, true
			}
		}
	}
	return department.General, false
}
