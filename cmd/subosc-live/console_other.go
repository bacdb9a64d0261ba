//go:build !windows

package main

func enableVirtualTerminal() {}
