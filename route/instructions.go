package route

import (
	"fmt"
	"strings"
)

// DirectTrip is the fixed label used when no route computation took
// place. It is also the default route description on tickets.
const DirectTrip = "Direct Trip"

// Describe converts a station path and its per-hop line list into
// transfer-annotated navigation text, one marker per line of output.
//
// The marker order is fixed: a start marker at path[0] naming the
// first line, a transfer marker at each station where the hop line
// changes, and an arrival marker at the last station. Empty or nil
// inputs yield DirectTrip.
func Describe(path, lines []string) string {
	if len(path) == 0 || len(lines) == 0 {
		return DirectTrip
	}

	var b strings.Builder
	currentLine := lines[0]
	fmt.Fprintf(&b, "🟢 Start at %s on the %s", path[0], currentLine)

	// lines[i] carries the hop path[i] → path[i+1]; a change against
	// the previous hop means the transfer happened at path[i].
	for i := 1; i < len(lines); i++ {
		if lines[i] != currentLine {
			currentLine = lines[i]
			fmt.Fprintf(&b, "\n🔄 Transfer at %s to the %s", path[i], currentLine)
		}
	}

	fmt.Fprintf(&b, "\n🏁 Arrive at %s", path[len(path)-1])

	return b.String()
}
