package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
	"github.com/Amr-9/vanityjobs/pkg/worker"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// PrintBanner shows the tool name and version
func PrintBanner(version string) {
	fmt.Println()
	fmt.Printf("  %s%s◎ vanity%s %s• base58 address search • v%s%s\n", ColorCyan, ColorBold, ColorReset, ColorDim, version, ColorReset)
	fmt.Println()
}

// PrintSearchInfo displays the pattern and its estimate
func PrintSearchInfo(network keys.Network, p string, mt pattern.MatchType, d pattern.Difficulty) {
	fmt.Printf("\n    %s🚀 SEARCHING%s %s", ColorGreen+ColorBold, ColorReset, network)

	switch mt {
	case pattern.Prefix:
		fmt.Printf(" %s%s%s%s...%s", ColorBold, ColorCyan, p, ColorDim, ColorReset)
	case pattern.Suffix:
		fmt.Printf(" %s...%s%s%s%s", ColorDim, ColorCyan, ColorBold, p, ColorReset)
	default:
		fmt.Printf(" %s...%s%s%s%s...%s", ColorDim, ColorCyan, ColorBold, p, ColorDim, ColorReset)
	}

	fmt.Printf(" %s(1/%s, ~%s, %s)%s\n\n", ColorDim, FormatNumber(uint64(d.Base)), d.EstimatedTime(), d.Warning, ColorReset)
}

// PrintProgress shows animated progress bar
func PrintProgress(attempts uint64, elapsed time.Duration, estimated uint64, frame int) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	barWidth := 40
	filled := int(Chance(attempts, estimated) * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Printf("\r    %s%s%s %s%s%s %s%s%s │ %s%s%s │ %s",
		ColorCyan, spinner, ColorReset,
		ColorDim, bar, ColorReset,
		ColorGreen+ColorBold, FormatHashRate(Rate(attempts, elapsed)), ColorReset,
		ColorYellow, FormatNumber(attempts), ColorReset,
		FormatDuration(elapsed))
}

// PrintSuccess shows the found address
func PrintSuccess(result worker.Result, savedTo string) {
	fmt.Printf("\n    %s%s╔══════════════════════════════════════════════════════════╗%s\n", ColorGreen, ColorBold, ColorReset)
	fmt.Printf("    %s%s║               ✨ ADDRESS FOUND! ✨                       ║%s\n", ColorGreen, ColorBold, ColorReset)
	fmt.Printf("    %s%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorGreen, ColorBold, ColorReset)

	fmt.Printf("    %s%s ADDRESS%s\n\n", ColorCyan+ColorBold, strings.ToUpper(result.Network.String()), ColorReset)
	fmt.Printf("       %s%s%s%s\n\n", ColorGreen, ColorBold, result.Address, ColorReset)

	fmt.Printf("    %s🔑 PRIVATE KEY%s\n", ColorPurple+ColorBold, ColorReset)
	fmt.Printf("       %s%s%s\n\n", ColorYellow, result.PrivateKey, ColorReset)

	fmt.Printf("    %s🌱 SEED PHRASE%s %s(%s)%s\n", ColorPurple+ColorBold, ColorReset, ColorDim, result.Path, ColorReset)
	fmt.Printf("       %s%s%s\n\n", ColorYellow, result.Mnemonic, ColorReset)

	if savedTo == "" {
		savedTo = "not saved"
	}
	fmt.Printf("    %s⏱   %s%s   %s│   %s📊  %s%s   %s│   %s💾  %s%s%s\n\n",
		ColorCyan, ColorReset+ColorBold, FormatDuration(result.Elapsed),
		ColorDim,
		ColorPurple, ColorReset+ColorBold, FormatNumber(result.Attempts),
		ColorDim,
		ColorYellow, ColorReset+ColorBold, savedTo,
		ColorReset)
	fmt.Printf("    %s%s⚠  KEEP YOUR PRIVATE KEY SECRET!%s\n", ColorRed, ColorBold, ColorReset)
}

// ClearLine clears the current line
func ClearLine() {
	fmt.Print("\r                                                                                              \r")
}

// Chance is the probability of at least one hit after attempts, given the
// attempts at which it reaches 50%.
func Chance(attempts, halfway uint64) float64 {
	if halfway == 0 {
		return 1
	}
	return 1.0 - math.Pow(0.5, float64(attempts)/float64(halfway))
}

// Rate returns attempts per second
func Rate(attempts uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(attempts) / elapsed.Seconds()
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
