package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Tidebridge ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Ocean gradient (sky -> teal)
	s1 := termenv.String("  _____ _    _     _          _    _             ").Foreground(p.Color("#38bdf8"))
	s2 := termenv.String(" |_   _(_)__| |___| |__  _ _ (_)__| |__ _ ___    ").Foreground(p.Color("#22d3ee"))
	s3 := termenv.String("   | | | / _` / -_) '_ \\| '_|| / _` / _` / -_)   ").Foreground(p.Color("#2dd4bf"))
	s4 := termenv.String("   |_| |_\\__,_\\___|_.__/|_|  |_\\__,_\\__, \\___|   ").Foreground(p.Color("#34d399"))
	s5 := termenv.String("                                     |___/       ").Foreground(p.Color("#4ade80"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
