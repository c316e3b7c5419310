package jobs

import (
	"fmt"
	"strings"
	"time"

	"github.com/Amr-9/vanityjobs/internal/ui"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
)

func startText(j *job) string {
	d := j.difficulty
	return fmt.Sprintf("Searching %s address with %s %q. Difficulty 1 in %s, about %s (%s).",
		j.network, j.matchType, j.pattern, ui.FormatNumber(uint64(d.Base)), d.EstimatedTime(), d.Warning)
}

func progressText(attempts uint64, elapsed time.Duration, d pattern.Difficulty) string {
	return fmt.Sprintf("%s attempts in %s (%s), %.0f%% chance so far",
		ui.FormatNumber(attempts),
		ui.FormatDuration(elapsed),
		ui.FormatHashRate(ui.Rate(attempts, elapsed)),
		ui.Chance(attempts, d.EstimatedAttempts)*100)
}

func outcomeText(o Outcome) string {
	var b strings.Builder
	switch o.State {
	case Succeeded:
		fmt.Fprintf(&b, "Found %s after %s attempts in %s.",
			o.Result.Address, ui.FormatNumber(o.Attempts), ui.FormatDuration(o.Elapsed))
		if o.PersistErr != nil {
			fmt.Fprintf(&b, " Saving the wallet failed: %v", o.PersistErr)
		}
	case TimedOut:
		fmt.Fprintf(&b, "Search timed out after %s attempts in %s.",
			ui.FormatNumber(o.Attempts), ui.FormatDuration(o.Elapsed))
	case Cancelled:
		fmt.Fprintf(&b, "Search cancelled after %s attempts: %s.", ui.FormatNumber(o.Attempts), o.Reason)
	case Exhausted:
		fmt.Fprintf(&b, "No match within %s attempts. Try a shorter pattern.", ui.FormatNumber(o.Attempts))
	default:
		fmt.Fprintf(&b, "Search failed: %s.", o.Reason)
	}
	return b.String()
}
