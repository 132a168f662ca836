package monitor

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/teamdeck/pkg/monitor/modal"
)

// dialogWidth returns the outer width for member dialogs.
func dialogWidth(screenWidth int) int {
	w := screenWidth * 80 / 100
	if w > 72 {
		w = 72
	}
	if w < 40 {
		w = 40
	}
	if w > screenWidth-2 && screenWidth > 22 {
		w = screenWidth - 2
	}
	return w
}

// bioWidth is the wrap width for pre-rendered bios so they fit the dialog.
func bioWidth(screenWidth int) int {
	return modal.ContentWidth(dialogWidth(screenWidth))
}

// centerOffset returns the top-left position that centers a fg of size
// fgW x fgH on a w x h screen, never negative.
func centerOffset(w, h, fgW, fgH int) (x, y int) {
	x = max((w-fgW)/2, 0)
	y = max((h-fgH)/2, 0)
	return x, y
}

// overlay draws fg over bg with its top-left corner at (x, y). Background
// cells left and right of fg stay visible; lines past the bottom of bg are
// dropped.
func overlay(bg, fg string, w, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")
	fgW := 0
	for _, l := range fgLines {
		fgW = max(fgW, ansi.StringWidth(l))
	}
	if fgW == 0 {
		return bg
	}

	for i := 0; i < len(fgLines) && y+i < len(bgLines); i++ {
		bgLine := bgLines[y+i]
		if n := ansi.StringWidth(bgLine); n < x {
			bgLine += strings.Repeat(" ", x-n)
		}
		left := ansi.Cut(bgLine, 0, x)
		right := ansi.Cut(bgLine, x+fgW, w)

		fgLine := fgLines[i]
		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		}
		bgLines[y+i] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}
