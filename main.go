package main

import (
	"os"

	"github.com/hoici/hoidev/cmd"
	"github.com/hoici/hoidev/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
