//go:build !unix && !windows

package main

func lowerPriority() error { return nil }
