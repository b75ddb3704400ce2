// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flog provides a simple way of logging with different levels to
// a single process-wide sink (stderr until ToFile redirects it; the
// daemon attaches flomon_service.log at startup). Time/Date
// are not logged on purpose when running under systemd, which adds them
// for us; use SetLogDateTime when running detached from a supervisor.
//
// Uses these prefixes: https://www.freedesktop.org/software/systemd/man/sd-daemon.html
package flog

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
	DebugPrefix string = "<7>[DEBUG]    "
	InfoPrefix  string = "<6>[INFO]     "
	WarnPrefix  string = "<4>[WARNING]  "
	ErrPrefix   string = "<3>[ERROR]    "
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

// ToFile redirects every level's writer to the given append-only file,
// used at startup to attach flomon_service.log.
func ToFile(f *os.File) {
	DebugWriter, InfoWriter, WarnWriter, ErrWriter = f, f, f, f
	DebugLog.SetOutput(f)
	InfoLog.SetOutput(f)
	WarnLog.SetOutput(f)
	ErrLog.SetOutput(f)
	DebugTimeLog.SetOutput(f)
	InfoTimeLog.SetOutput(f)
	WarnTimeLog.SetOutput(f)
	ErrTimeLog.SetOutput(f)
}

func SetLogDateTime(logdate bool) { logDateTime = logdate }

func printStr(v ...interface{}) string { return fmt.Sprint(v...) }

func Print(v ...interface{}) { Info(v...) }

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

// Fatal writes an error log line then stops the process. Only startup
// invariants (missing schema, invalid config) should call this.
func Fatal(v ...interface{}) {
	Error(v...)
	os.Exit(1)
}

func printfStr(format string, v ...interface{}) string { return fmt.Sprintf(format, v...) }

func Printf(format string, v ...interface{}) { Infof(format, v...) }

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

// The daemon distinguishes three failure classes beyond the usual levels
// (spec ERROR HANDLING DESIGN): EXPECTED streams known-offline per config
// hint, UNEXPECTED covers transport/parse/warehouse failures, UNKNOWN
// covers empty/sentinel responses that aren't really failures.

func Expected(stream string, v ...interface{}) {
	Infof("EXPECTED %s: %s", stream, printStr(v...))
}

func Unexpected(stream string, v ...interface{}) {
	Warnf("UNEXPECTED %s: %s", stream, printStr(v...))
}

func Unknown(stream string, v ...interface{}) {
	Warnf("UNKNOWN %s: %s", stream, printStr(v...))
}
