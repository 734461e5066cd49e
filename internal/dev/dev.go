package dev

import (
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/robinovitch61/uiscroll/internal/message"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logr verbosity levels
const (
	DEFAULT = 2
	VERBOSE = 3
	DEBUG   = 4
	TRACE   = 5
)

var debugSet = os.Getenv("UISCROLL_DEBUG")
var debugPath = os.Getenv("UISCROLL_DEBUG_PATH")

func path() string {
	if debugPath == "" {
		return "uiscroll.log"
	}
	return debugPath
}

// Enabled reports whether debug output is written
func Enabled() bool {
	return debugSet != ""
}

func Debug(msg string) {
	if !Enabled() {
		return
	}
	file, err := os.OpenFile(path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()
	logger := log.New(file, "", log.Ldate|log.Lmicroseconds)
	logger.Printf("%q", msg)
}

func DebugUpdateMsg(component string, msg tea.Msg) {
	switch msg.(type) {
	case message.EngineEventMsg, message.TickMsg, cursor.BlinkMsg:
	// skip logging messages that are too frequent
	default:
		Debug("--")
		Debug(fmt.Sprintf("Update %s: %T", component, msg))
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			Debug(fmt.Sprintf("  Key: '%v'", keyMsg.String()))
		}
	}
}

// Logger returns a structured logger writing to the debug file at TRACE verbosity, or a logger that discards
// everything when debugging is off. The returned function flushes the logger
func Logger() (logr.Logger, func()) {
	if !Enabled() {
		return logr.Discard(), func() {}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path()}
	cfg.ErrorOutputPaths = []string{path()}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-1 * TRACE))
	zapLog, err := cfg.Build()
	if err != nil {
		Debug(fmt.Sprintf("building logger: %v", err))
		return logr.Discard(), func() {}
	}
	return zapr.NewLogger(zapLog), func() { _ = zapLog.Sync() }
}
