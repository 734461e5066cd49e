package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const timestampFormat = "20060102T150405Z"

type SaveCompleteMsg struct {
	FullPath, SuccessMessage, ErrMessage string
}

// GetSaveCommand writes items to fileName, one per line. An empty fileName saves to a timestamped file in the
// working directory
func GetSaveCommand(fileName string, items []string) tea.Cmd {
	return func() tea.Msg {
		path, err := saveToFile(fileName, items, time.Now())
		if err != nil {
			return SaveCompleteMsg{ErrMessage: fmt.Sprintf("Error saving items: %v", err)}
		}
		return SaveCompleteMsg{
			FullPath:       path,
			SuccessMessage: fmt.Sprintf("Saved %d items to %s", len(items), path),
		}
	}
}

// saveToFile never overwrites: when the target exists the timestamp is appended to the name,
// e.g. /home/items.txt -> /home/items_20210101T120000Z.txt
func saveToFile(fileName string, items []string, at time.Time) (string, error) {
	stamp := at.UTC().Format(timestampFormat)
	path, err := resolvePath(fileName, stamp)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		ext := filepath.Ext(path)
		path = strings.TrimSuffix(path, ext) + "_" + stamp + ext
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	}
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, item := range items {
		if _, err := w.WriteString(item + "\n"); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// resolvePath expands a leading ~, defaults the name and the .txt extension and makes the path absolute
func resolvePath(fileName, stamp string) (string, error) {
	if fileName == "" {
		fileName = "uiscroll_" + stamp
	}
	if rest, ok := strings.CutPrefix(fileName, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		fileName = filepath.Join(home, rest)
	}
	if filepath.Ext(fileName) == "" {
		fileName += ".txt"
	}
	return filepath.Abs(fileName)
}
