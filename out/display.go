// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/cpmech/gosl/chk"
)

// Viewer returns the command that opens files with the default application of the platform
func Viewer() (cmd string, args []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", nil
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	}
	return "xdg-open", nil
}

// Display opens the artifact with the platform viewer without waiting for it to close
func Display(handle string) (err error) {
	cmd, args := Viewer()
	return DisplayWith(cmd, args, handle)
}

// DisplayWith opens the artifact with the given command
func DisplayWith(cmd string, args []string, handle string) (err error) {
	if _, err = os.Stat(handle); err != nil {
		return chk.Err("cannot display %q: %v", handle, err)
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		return chk.Err("cannot display %q: viewer %q is not available", handle, cmd)
	}
	c := exec.Command(path, append(args, handle)...)
	if err = c.Start(); err != nil {
		return chk.Err("cannot display %q: %v", handle, err)
	}
	go c.Wait()
	return
}
