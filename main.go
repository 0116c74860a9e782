package main

import (
	"os"

	"github.com/zhengshuai-xiao/SelfEncS/cmd"
	"github.com/zhengshuai-xiao/SelfEncS/internal"
)

var logger = internal.GetLogger("selfencs_main")

func main() {
	err := cmd.Main(os.Args)
	if err != nil {
		logger.Fatal(err)
	}
}
