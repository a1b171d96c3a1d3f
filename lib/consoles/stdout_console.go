package consoles

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	JSON    bool
	Verbose bool
	Output  io.Writer
}

type logrusConsole struct {
	mutex    sync.Mutex
	logger   *logrus.Logger
	prefixes []string
}

func NewStdOutConsole() Console {
	return NewConsole(Options{})
}

// NewDiscardConsole drops everything. Used by tests.
func NewDiscardConsole() Console {
	return NewConsole(Options{Output: io.Discard})
}

func NewConsole(opts Options) Console {
	logger := logrus.New()

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stdout)
	}

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &logrusConsole{logger: logger}
}

func (o *logrusConsole) Printf(format string, a ...any) {
	o.logger.Info(o.Prepare(format, a...))
}

func (o *logrusConsole) Debugf(format string, a ...any) {
	if !o.logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	o.logger.Debug(o.Prepare(format, a...))
}

func (o *logrusConsole) Warnf(format string, a ...any) {
	o.logger.Warn(o.Prepare(format, a...))
}

func (o *logrusConsole) Errorf(format string, a ...any) {
	o.logger.Error(o.Prepare(format, a...))
}

func (o *logrusConsole) Prepare(format string, a ...any) string {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	builder := strings.Builder{}
	for _, prefix := range o.prefixes {
		builder.WriteString(prefix)
	}
	builder.WriteString(strings.TrimSuffix(fmt.Sprintf(format, a...), "\n"))
	return builder.String()
}

func (o *logrusConsole) PushPrefix(format string, a ...any) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.prefixes = append(o.prefixes, fmt.Sprintf(format, a...))
}

func (o *logrusConsole) PopPrefix() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if len(o.prefixes) > 0 {
		o.prefixes = o.prefixes[:len(o.prefixes)-1]
	}
}
