package logging

import (
	"io"
	"log"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where the debug log goes.
type Options struct {
	File       string
	Debug      bool
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

var debugMode bool

func init() {
	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = "2006-01-02 15:04:05"
	formatter.FullTimestamp = true
	formatter.DisableColors = true
	logrus.SetFormatter(formatter)
	logrus.SetOutput(io.Discard)
}

// SetupLogging configures logging.
// If File is empty, logging is disabled: the terminal belongs to the UI.
// If File is set, logs rotate through lumberjack and the stdlib logger is bridged in.
func SetupLogging(opts Options) (cleanup func(), err error) {
	debugMode = opts.Debug
	if opts.File == "" {
		logrus.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}
	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     7, //days
		Compress:   opts.Compress,
	}
	logrus.SetOutput(rotator)
	if opts.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	// bubbletea and friends write through the stdlib logger
	bridge := logrus.StandardLogger().WriterLevel(logrus.DebugLevel)
	log.SetFlags(0)
	log.SetOutput(bridge)

	cleanup = func() {
		log.SetOutput(io.Discard)
		bridge.Close()
		rotator.Close()
	}
	return cleanup, nil
}

func IsDebugMode() bool { return debugMode }

func Debug(args ...any)                 { logrus.Debug(args...) }
func Debugf(format string, args ...any) { logrus.Debugf(format, args...) }
func Infof(format string, args ...any)  { logrus.Infof(format, args...) }
func Warnf(format string, args ...any)  { logrus.Warnf(format, args...) }
func Errorf(format string, args ...any) { logrus.Errorf(format, args...) }
