package logging

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
)

type level int

const (
	TRACE level = iota
	DEBUG
	INFO
	WARNING
	ERROR
)

const (
	format = "2006-01-02 15:04:05"
)

var (
	mu  sync.Mutex
	min = TRACE
)

// SetLevel sets the minimum level that gets written out.
func SetLevel(l level) {
	mu.Lock()
	min = l
	mu.Unlock()
}

func Trace(msg string) {
	output(TRACE, msg)
}

func Tracef(msg string, args ...interface{}) {
	Trace(fmt.Sprintf(msg, args...))
}

func Debug(msg string) {
	output(DEBUG, msg)
}

func Debugf(msg string, args ...interface{}) {
	Debug(fmt.Sprintf(msg, args...))
}

func Info(msg string) {
	output(INFO, msg)
}

func Infof(msg string, args ...interface{}) {
	Info(fmt.Sprintf(msg, args...))
}

func Warning(msg string) {
	output(WARNING, msg)
}

func Warningf(msg string, args ...interface{}) {
	Warning(fmt.Sprintf(msg, args...))
}

func Error(msg string) {
	output(ERROR, msg)
}

func Errorf(msg string, args ...interface{}) {
	Error(fmt.Sprintf(msg, args...))
}

func output(l level, msg string) {
	mu.Lock()
	skip := l < min
	mu.Unlock()

	if skip {
		return
	}

	t := time.Now().Format(format)
	switch l {
	case TRACE:
		color.Cyan("%v TRACE %s", t, msg)
	case DEBUG:
		color.Green("%v DEBUG %s", t, msg)
	case INFO:
		color.White("%v INFO %s", t, msg)
	case WARNING:
		color.Blue("%v WARN %s", t, msg)
	case ERROR:
		color.Red("%v ERROR %s", t, msg)
	}
}
