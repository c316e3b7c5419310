package ui

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/Amr-9/vanityjobs/pkg/keys"
	"github.com/Amr-9/vanityjobs/pkg/pattern"
)

// Command is one parsed line of the serve interpreter.
type Command struct {
	Name      string // start, status, cancel, active, help, quit
	Requester string
	Pattern   string
	Match     pattern.MatchType
	Reason    string
}

// Errors returned by ParseCommand
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// ParseCommand parses an interpreter line:
//
//	start <requester> <pattern> [prefix|suffix|contains]
//	status <requester>
//	cancel <requester> [reason...]
//	active | help | quit
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, nil
	}

	cmd := Command{Name: strings.ToLower(fields[0])}
	args := fields[1:]

	switch cmd.Name {
	case "start":
		if len(args) < 2 || len(args) > 3 {
			return Command{}, fmt.Errorf("%w: start <requester> <pattern> [prefix|suffix|contains]", ErrUsage)
		}
		cmd.Requester, cmd.Pattern, cmd.Match = args[0], args[1], pattern.Prefix
		if len(args) == 3 {
			mt, err := pattern.ParseMatchType(args[2])
			if err != nil {
				return Command{}, err
			}
			cmd.Match = mt
		}
	case "status":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: status <requester>", ErrUsage)
		}
		cmd.Requester = args[0]
	case "cancel":
		if len(args) < 1 {
			return Command{}, fmt.Errorf("%w: cancel <requester> [reason]", ErrUsage)
		}
		cmd.Requester = args[0]
		cmd.Reason = strings.Join(args[1:], " ")
	case "active", "help":
	case "quit", "exit", "q":
		cmd.Name = "quit"
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return cmd, nil
}

// SelectNetwork asks which network to search on. Anything unrecognised
// selects Solana.
func SelectNetwork(reader *bufio.Reader) keys.Network {
	fmt.Printf("    %s🌐 SELECT NETWORK%s\n", ColorPurple+ColorBold, ColorReset)
	fmt.Printf("    %s[1]%s ◎ Solana (SOL) %s- Base58%s\n", ColorCyan, ColorReset, ColorDim, ColorReset)
	fmt.Printf("    %s[2]%s ♦ Tron (TRX) %s- T..., Base58Check%s\n", ColorCyan, ColorReset, ColorDim, ColorReset)
	fmt.Printf("    %s[3]%s ₿ Bitcoin (BTC) %s- 1..., Base58Check%s\n", ColorCyan, ColorReset, ColorDim, ColorReset)

	fmt.Printf("\n    %s→%s ", ColorGreen, ColorReset)
	choice, _ := reader.ReadString('\n')

	var n keys.Network
	switch strings.TrimSpace(choice) {
	case "2":
		n = keys.Tron
	case "3":
		n = keys.Bitcoin
	default:
		n = keys.Solana
	}
	fmt.Printf("    %s✓ %s Selected%s\n\n", ColorGreen, n, ColorReset)
	return n
}

// GetPatternFromUser prompts for a pattern and match type. It returns an
// empty pattern if the input was rejected.
func GetPatternFromUser(reader *bufio.Reader, network keys.Network) (string, pattern.MatchType) {
	fmt.Printf("    %s🎯 TARGET PATTERN%s\n", ColorPurple+ColorBold, ColorReset)
	if lead := network.LeadingSymbols(); lead > 0 {
		fmt.Printf("    %s  (%s addresses start with a fixed symbol, it is skipped)%s\n", ColorDim, network, ColorReset)
	}

	fmt.Printf("    %sPattern%s (max %d): ", ColorCyan, ColorReset, pattern.MaxLength)
	input, _ := reader.ReadString('\n')
	p := strings.TrimSpace(input)

	fmt.Printf("    %sMatch%s [prefix/suffix/contains]: ", ColorCyan, ColorReset)
	input, _ = reader.ReadString('\n')
	mtInput := strings.TrimSpace(input)
	if mtInput == "" {
		mtInput = string(pattern.Prefix)
	}
	mt, err := pattern.ParseMatchType(mtInput)
	if err != nil {
		fmt.Printf("    %s⚠ Invalid match type %q%s\n", ColorRed, mtInput, ColorReset)
		return "", ""
	}

	if p != "" && !pattern.IsValidBase58(p) {
		fmt.Printf("    %s⚠ Invalid Base58 character(s): %s%s\n", ColorRed, string(pattern.InvalidChars(p)), ColorReset)
		fmt.Printf("    %s  (Not allowed: 0, O, I, l)%s\n", ColorDim, ColorReset)
		return "", mt
	}
	if len([]rune(p)) > pattern.MaxLength {
		fmt.Printf("    %s⚠ Too long! At most %d symbols%s\n", ColorRed, pattern.MaxLength, ColorReset)
		return "", mt
	}
	return p, mt
}

// AskToContinue prompts user to continue or exit
func AskToContinue(reader *bufio.Reader) bool {
	fmt.Printf("\n    %s[Enter]%s Search again  │  %s[Q]%s Exit\n", ColorGreen, ColorReset, ColorRed, ColorReset)
	fmt.Printf("    %s→%s ", ColorCyan, ColorReset)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input != "q" && input != "quit" && input != "exit"
}
