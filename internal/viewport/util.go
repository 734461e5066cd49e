package viewport

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func percent(a, b int) int {
	if b == 0 {
		return 0
	}
	return int(float32(a) / float32(b) * 100)
}

// pad is a test helper function that pads the given lines to the given width and height.
// for example, pad(5, 4, []string{"a", "b", "c"}) will be padded to:
// "a    "
// "b    "
// "c    "
// "     "
// as a single string
func pad(width, height int, lines []string) string {
	var res []string
	for _, line := range lines {
		resLine := line
		numSpaces := width - lipgloss.Width(line)
		if numSpaces > 0 {
			resLine += strings.Repeat(" ", numSpaces)
		}
		res = append(res, resLine)
	}
	numEmptyLines := height - len(lines)
	for i := 0; i < numEmptyLines; i++ {
		res = append(res, strings.Repeat(" ", width))
	}
	return strings.Join(res, "\n")
}

func clampValMinMax(v, minimum, maximum int) int {
	return max(minimum, min(maximum, v))
}

// take returns the cells of s from column start that fit in width columns. A wide rune straddling either edge is
// dropped
func take(s string, start, width int) string {
	var b strings.Builder
	pos, used := 0, 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if pos < start {
			pos += rw
			continue
		}
		if used+rw > width {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String()
}

// truncate shows width columns of line starting at column start, replacing the edges with indicator where content
// is cut off
func truncate(line string, start, width int, indicator string) string {
	if width <= 0 {
		return ""
	}
	total := runewidth.StringWidth(line)
	res := take(line, start, width)
	iw := runewidth.StringWidth(indicator)
	if iw == 0 || iw > width {
		return res
	}
	if total > start+width {
		res = take(res, 0, width-iw) + indicator
	}
	if start > 0 && total > 0 {
		if res == "" {
			// panned right past where the line ends
			return indicator
		}
		res = indicator + take(res, iw, width-iw)
	}
	return res
}
