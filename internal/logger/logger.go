package logger

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// label is padded so messages line up.
func (l Level) label() string {
	switch l {
	case LevelWarn:
		return "[WARN]"
	case LevelError:
		return "[EROR]"
	default:
		return "[INFO]"
	}
}

var levelColor = map[Level]*color.Color{
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed, color.Bold),
}

var (
	mu          sync.Mutex
	out         io.Writer = os.Stdout
	logFile     *os.File
	logDir      string
	currentDay  string
	fileLogging bool
	now         = time.Now
)

// Init enables daily log files under dir. A dir not already named "logs" gets
// a logs/ subdirectory. An empty dir keeps console-only logging.
func Init(dir string) error {
	if dir == "" {
		return nil
	}
	resolved := dir
	if path.Base(filepath.ToSlash(dir)) != "logs" {
		resolved = filepath.Join(dir, "logs")
	}
	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	logDir = resolved
	fileLogging = true
	if err := rotateLocked(now()); err != nil {
		fileLogging = false
		return err
	}
	return nil
}

// SetOutput redirects console output. Colors are dropped when w is not a
// terminal, which is what tests want.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Close stops file logging.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	fileLogging = false
	logDir = ""
	currentDay = ""
}

func Info(format string, args ...interface{}) {
	write(LevelInfo, format, args...)
}

func Warn(format string, args ...interface{}) {
	write(LevelWarn, format, args...)
}

func Error(format string, args ...interface{}) {
	write(LevelError, format, args...)
}

func write(lvl Level, format string, args ...interface{}) {
	t := now()
	stamp := t.Format("2006/01/02 15:04:05")
	msg := fmt.Sprintf(format, args...)

	mu.Lock()
	defer mu.Unlock()

	if fileLogging {
		if err := rotateLocked(t); err == nil && logFile != nil {
			_, _ = fmt.Fprintf(logFile, "%s %s %s\n", stamp, lvl.label(), msg)
		}
	}

	label := lvl.label()
	if f, ok := out.(*os.File); ok && f == os.Stdout && !color.NoColor {
		label = levelColor[lvl].Sprint(label)
	}
	_, _ = fmt.Fprintf(out, "%s %s %s\n", stamp, label, msg)
}

func rotateLocked(t time.Time) error {
	if logDir == "" {
		return nil
	}
	day := t.Format("2006-01-02")
	if logFile != nil && currentDay == day {
		return nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	f, err := os.OpenFile(filepath.Join(logDir, day+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logFile = f
	currentDay = day
	return nil
}
