//go:build !windows

package wallet

func hideFile(string) error { return nil }
