package util

import (
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
)

// JoinWithEqualSpacing spreads items across width, truncating from the right when they do not fit
func JoinWithEqualSpacing(width int, items ...string) string {
	if len(items) == 0 {
		return ""
	}

	totalContentWidth := 0
	for _, item := range items {
		totalContentWidth += lipgloss.Width(item)
	}

	if width <= 0 {
		return ""
	}

	if totalContentWidth <= width {
		// if enough space, proceed with equal spacing
		if len(items) == 1 {
			return items[0]
		}

		totalSpacing := width - totalContentWidth
		baseSpacing := totalSpacing / (len(items) - 1)
		extraSpacing := totalSpacing % (len(items) - 1)

		var result strings.Builder

		for i, item := range items {
			result.WriteString(item)
			if i < len(items)-1 {
				spaces := baseSpacing
				if i < extraSpacing {
					spaces++
				}
				result.WriteString(strings.Repeat(" ", spaces))
			}
		}

		return result.String()
	}

	// if not enough space, truncate from the right
	var result strings.Builder
	remainingWidth := width
	for _, item := range items {
		itemWidth := lipgloss.Width(item)
		if remainingWidth <= 0 {
			break
		}
		if itemWidth > remainingWidth {
			result.WriteString(lipgloss.NewStyle().MaxWidth(remainingWidth).Render(item))
			break
		}
		result.WriteString(item)
		remainingWidth -= itemWidth
	}
	return result.String()
}

// CmpStr compares two strings and fails the test if they are not equal
func CmpStr(t *testing.T, expected, actual string) {
	t.Helper()
	_, file, line, _ := runtime.Caller(1)
	testName := t.Name()
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("\nTest %q failed at %s:%d\nDiff (-expected +actual):\n%s", testName, file, line, diff)
	}
}
