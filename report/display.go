package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Printf("internal compiler error: %s\n", message)
	fmt.Print("This error was not supposed to happen: please open an issue on GitHub\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print("fatal")
	errorColorFG.Printf(" %s\n", message)
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the string to prefix the message with: eg. if we want to display an error,
// the label is "error".
func displayCompileMessage(label, path string, span *TextSpan, message string) {
	if label == "error" {
		errorStyleBG.Print(label)
	} else {
		warnStyleBG.Print(label)
	}

	if span == nil {
		fmt.Printf(" %s: %s\n", path, message)
	} else {
		fmt.Printf(" %s:%d:%d: %s\n", path, span.StartLine+1, span.StartCol+1, message)
		displaySourceText(path, span)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(path string, err error) {
	errorStyleBG.Print("error")
	fmt.Printf(" %s: %s\n", path, err)
}

// displayInfo displays an informational message with a green tag.
func displayInfo(tag, message string) {
	infoColorFG.Print(tag)
	fmt.Printf(" %s\n", message)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(path string, span *TextSpan) {
	file, err := os.Open(path)
	if err != nil {
		// The source may not be on disk (eg. compiled from memory): span
		// coordinates alone have to do.
		return
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if err := sc.Err(); err != nil {
		return
	}

	// Calculate the minimum line indentation so the snippet can be dedented.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Print the source lines prefixed with their line numbers along with the
	// underlining carets.
	maxLineNumWidth := len(strconv.Itoa(span.EndLine + 1))
	for i, line := range lines {
		lineNum := span.StartLine + i + 1
		fmt.Printf("  %-*d | %s\n", maxLineNumWidth, lineNum, line[minIndent:])

		carets := caretsForLine(line, span, span.StartLine+i, minIndent)
		fmt.Printf("  %s %s %s\n", strings.Repeat(" ", maxLineNumWidth), " ", carets)
	}

	fmt.Println()
}

// caretsForLine computes the caret underlining for a single displayed line.
func caretsForLine(line string, span *TextSpan, ln, minIndent int) string {
	start := 0
	if ln == span.StartLine {
		start = span.StartCol - minIndent
		if start < 0 {
			start = 0
		}
	}

	end := len(line) - minIndent
	if ln == span.EndLine {
		end = span.EndCol - minIndent
	}
	if end > len(line)-minIndent {
		end = len(line) - minIndent
	}
	if end < start {
		end = start
	}

	return strings.Repeat(" ", start) + errorColorFG.Sprint(strings.Repeat("^", end-start))
}
