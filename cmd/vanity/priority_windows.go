//go:build windows

package main

import "golang.org/x/sys/windows"

// lowerPriority moves the process to the below-normal priority class.
func lowerPriority() error {
	return windows.SetPriorityClass(windows.CurrentProcess(), windows.BELOW_NORMAL_PRIORITY_CLASS)
}
