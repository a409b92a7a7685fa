package main

import (
	"os"
	"runtime/debug"

	"github.com/siyuan-infoblox/using-order/pkg/cmd"
)

func main() {
	info, _ := debug.ReadBuildInfo()
	if err := cmd.Execute(info); err != nil {
		os.Exit(1)
	}
}
