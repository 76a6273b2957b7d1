package main

import (
	"os"

	"github.com/annotation-forge/annotator/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
