package main

import (
	"os"

	"github.com/quizdsl/quizc/cmd/quizc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
