package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the server start-up banner to w.
func PrintBanner(w io.Writer, addr string) {
	p := termenv.ColorProfile()
	s1 := termenv.String("   ___  __ _____ ___  __  __ ___ _____ _").Foreground(p.Color("#818cf8"))
	s2 := termenv.String("  / _ \\/ // / _ / _ \\/  |/  / _ /_  _/_\\").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" / __ / _  / // / // / /|_/ / __ |/ // _ \\").Foreground(p.Color("#c084fc"))
	s4 := termenv.String("/_/ |_\\___/\\___/\\___/_/  /_/_/ |_/_//_/ \\_\\").Foreground(p.Color("#e879f9"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintf(w, "\n  listening on %s\n\n", termenv.String(addr).Foreground(p.Color("#f472b6")))
}
