// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package log provides simple leveled logging for the VSD transport,
// config and CLI layers. Time/date are omitted by default on the
// assumption that systemd (or an equivalent supervisor) timestamps
// output for us; SetLogDateTime turns that back on.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

var logDateTime bool

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
)

var (
	DebugPrefix string = "<7>[DEBUG]   "
	InfoPrefix  string = "<6>[INFO]    "
	WarnPrefix  string = "<4>[WARNING] "
	ErrPrefix   string = "<3>[ERROR]   "
)

var (
	DebugLog *log.Logger = log.New(DebugWriter, DebugPrefix, 0)
	InfoLog  *log.Logger = log.New(InfoWriter, InfoPrefix, 0)
	WarnLog  *log.Logger = log.New(WarnWriter, WarnPrefix, log.Lshortfile)
	ErrLog   *log.Logger = log.New(ErrWriter, ErrPrefix, log.Llongfile)

	DebugTimeLog *log.Logger = log.New(DebugWriter, DebugPrefix, log.LstdFlags)
	InfoTimeLog  *log.Logger = log.New(InfoWriter, InfoPrefix, log.LstdFlags)
	WarnTimeLog  *log.Logger = log.New(WarnWriter, WarnPrefix, log.LstdFlags|log.Lshortfile)
	ErrTimeLog   *log.Logger = log.New(ErrWriter, ErrPrefix, log.LstdFlags|log.Llongfile)
)

// SetLogLevel silences every writer below lvl by redirecting it to
// io.Discard. Recognized values: "debug", "info", "warn", "err"/"fatal".
func SetLogLevel(lvl string) {
	switch lvl {
	case "err", "fatal":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug":
	default:
		fmt.Printf("log: invalid loglevel %q, using \"debug\"\n", lvl)
	}
}

func SetLogDateTime(enabled bool) {
	logDateTime = enabled
}

func printStr(v ...interface{}) string { return fmt.Sprint(v...) }

func Debug(v ...interface{}) {
	if DebugWriter != io.Discard {
		if logDateTime {
			DebugTimeLog.Output(2, printStr(v...))
		} else {
			DebugLog.Output(2, printStr(v...))
		}
	}
}

func Info(v ...interface{}) {
	if InfoWriter != io.Discard {
		if logDateTime {
			InfoTimeLog.Output(2, printStr(v...))
		} else {
			InfoLog.Output(2, printStr(v...))
		}
	}
}

func Warn(v ...interface{}) {
	if WarnWriter != io.Discard {
		if logDateTime {
			WarnTimeLog.Output(2, printStr(v...))
		} else {
			WarnLog.Output(2, printStr(v...))
		}
	}
}

func Error(v ...interface{}) {
	if ErrWriter != io.Discard {
		if logDateTime {
			ErrTimeLog.Output(2, printStr(v...))
		} else {
			ErrLog.Output(2, printStr(v...))
		}
	}
}

// Fatal logs at error level then exits. Reserved for CLI entry points;
// library code never calls it; decode and codec failures are returned,
// not fatal.
func Fatal(v ...interface{}) {
	Error(v...)
	os.Exit(1)
}

func printfStr(format string, v ...interface{}) string { return fmt.Sprintf(format, v...) }

func Debugf(format string, v ...interface{}) {
	if DebugWriter != io.Discard {
		if logDateTime {
			DebugTimeLog.Output(2, printfStr(format, v...))
		} else {
			DebugLog.Output(2, printfStr(format, v...))
		}
	}
}

func Infof(format string, v ...interface{}) {
	if InfoWriter != io.Discard {
		if logDateTime {
			InfoTimeLog.Output(2, printfStr(format, v...))
		} else {
			InfoLog.Output(2, printfStr(format, v...))
		}
	}
}

func Warnf(format string, v ...interface{}) {
	if WarnWriter != io.Discard {
		if logDateTime {
			WarnTimeLog.Output(2, printfStr(format, v...))
		} else {
			WarnLog.Output(2, printfStr(format, v...))
		}
	}
}

func Errorf(format string, v ...interface{}) {
	if ErrWriter != io.Discard {
		if logDateTime {
			ErrTimeLog.Output(2, printfStr(format, v...))
		} else {
			ErrLog.Output(2, printfStr(format, v...))
		}
	}
}

func Fatalf(format string, v ...interface{}) {
	Errorf(format, v...)
	os.Exit(1)
}
