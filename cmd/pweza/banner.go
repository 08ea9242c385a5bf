package main

import (
	"fmt"
	"io"
)

// ANSI colors for output printed outside the TUI.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiAmber  = "\033[38;2;245;158;11m" // #f59e0b
	ansiGold   = "\033[38;2;251;191;36m" // #fbbf24
	ansiBronze = "\033[38;2;180;120;40m"
)

// printLogo prints the spaced PWEZA wordmark in alternating amber and gold.
func printLogo(w io.Writer) {
	const letters = "PWEZA"
	colors := [2]string{ansiAmber, ansiGold}
	fmt.Fprint(w, "\n  ")
	for i, ch := range letters {
		fmt.Fprintf(w, "%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintf(w, "  %sadmin%s\n", ansiBronze, ansiReset)
}
