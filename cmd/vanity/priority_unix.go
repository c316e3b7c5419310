//go:build unix

package main

import "golang.org/x/sys/unix"

// lowerPriority renices the whole process to 10.
func lowerPriority() error {
	return unix.Setpriority(unix.PRIO_PROCESS, 0, 10)
}
