package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Plain stdout loggers until InitLoggers attaches file rotation, so
// importing packages can log safely in any order.
var (
	InfoLogger  = logrus.New()
	WarnLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLoggers is called once at startup; it routes each level to its
// own rotated file alongside stdout.
func InitLoggers() {
	InfoLogger = newLogger("logs/info.log", logrus.InfoLevel)
	WarnLogger = newLogger("logs/warn.log", logrus.WarnLevel)
	ErrorLogger = newLogger("logs/error.log", logrus.ErrorLevel)
}

func newLogger(filename string, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	rotated := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	l.SetOutput(io.MultiWriter(os.Stdout, rotated))
	return l
}
