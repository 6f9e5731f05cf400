// Package tui holds the terminal presentation helpers: banner, menus and
// per-number progress lines. Pure output; no validation logic.
package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the startup banner.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	title := termenv.String(" validatewhatsapp ").
		Foreground(p.Color("#0b141a")).
		Background(p.Color("#25d366")).
		Bold()
	sub := termenv.String("batch number validation · " + version).Foreground(p.Color("#8696a0"))

	fmt.Println()
	fmt.Println(title)
	fmt.Println(sub)
	fmt.Println()
}

// ResultLine renders one progress line for a processed number.
func ResultLine(index int, address string, exists bool, reason string) string {
	p := termenv.ColorProfile()

	verdict := termenv.String("not found").Foreground(p.Color("#f15c6d"))
	if exists {
		verdict = termenv.String("exists").Foreground(p.Color("#25d366"))
	}

	line := fmt.Sprintf("[%d] %s -> %s", index+1, address, verdict)
	if reason != "" {
		line += " " + termenv.String("("+reason+")").Foreground(p.Color("#8696a0")).String()
	}
	return line
}

// PrintPairingHint tells the user a pairing code is about to render.
func PrintPairingHint(sessionName string) {
	p := termenv.ColorProfile()
	msg := termenv.String(fmt.Sprintf("Session %q needs pairing. Scan the code with your phone:", sessionName)).
		Foreground(p.Color("#ffd970"))
	fmt.Println(msg)
}
