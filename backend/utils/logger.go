package utils

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

const appName = "RESET Academy"

// LoggerConfig configures InitLogger.
type LoggerConfig struct {
	// text or json
	Format string
	// defaults to os.Stdout
	Output io.Writer
	// ANSI colours, text format only
	EnableColors bool
}

// InitLogger builds the application logger. The json format writes one object
// per line with time, app and msg keys.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	if cfg.Format == "json" {
		return log.New(&jsonLines{w: cfg.Output, now: time.Now}, "", 0)
	}

	prefix := "[" + appName + "] "
	if cfg.EnableColors {
		prefix = "\033[36m" + prefix + "\033[0m" // cyan
	}
	return log.New(cfg.Output, prefix, log.LstdFlags|log.Lshortfile|log.LUTC)
}

type logLine struct {
	Time string `json:"time"`
	App  string `json:"app"`
	Msg  string `json:"msg"`
}

// jsonLines turns every log.Logger output call into one JSON object.
// log.Logger serialises its writes, so no locking is needed here.
type jsonLines struct {
	w   io.Writer
	now func() time.Time
}

func (j *jsonLines) Write(p []byte) (int, error) {
	line, err := json.Marshal(logLine{
		Time: j.now().UTC().Format(time.RFC3339),
		App:  appName,
		Msg:  strings.TrimRight(string(p), "\n"),
	})
	if err != nil {
		return 0, err
	}
	if _, err := j.w.Write(append(line, '\n')); err != nil {
		return 0, err
	}
	return len(p), nil
}

// StatusColor returns the ANSI colour used for an HTTP status in text logs.
func StatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m" // red
	case status >= 400:
		return "\033[33m" // yellow
	case status >= 300:
		return "\033[36m" // cyan
	case status >= 200:
		return "\033[32m" // green
	default:
		return "\033[37m" // white
	}
}

func MethodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m" // blue
	case "POST":
		return "\033[33m"
	case "PUT":
		return "\033[36m"
	case "DELETE":
		return "\033[31m"
	case "PATCH":
		return "\033[32m"
	default:
		return "\033[37m"
	}
}
