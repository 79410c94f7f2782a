package main

import (
	"github.com/goodluckfit/fitauth/internal/cli"
)

func main() {
	cli.Execute()
}
