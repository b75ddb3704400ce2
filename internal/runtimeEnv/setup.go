// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package runtimeEnv

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file and adds every variable definition found to
// the process environment. Used at startup to pick up DATABASE_URL
// without requiring it to be exported by the caller's shell.
func LoadEnv(file string) error {
	return godotenv.Load(file)
}

// SystemdNotify informs systemd of a readiness/status change, if started
// under systemd: https://www.freedesktop.org/software/systemd/man/sd_notify.html
func SystemdNotify(ready bool, status string) {
	if os.Getenv("NOTIFY_SOCKET") == "" {
		return
	}

	args := []string{fmt.Sprintf("--pid=%d", os.Getpid())}
	if ready {
		args = append(args, "--ready")
	}
	if status != "" {
		args = append(args, fmt.Sprintf("--status=%s", status))
	}

	cmd := exec.Command("systemd-notify", args...)
	cmd.Run() // errors ignored on purpose, there is not much to do anyways.
}
