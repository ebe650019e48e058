package main

import (
	"github.com/mpetrie/geohunt/internal/cli"
)

func main() {
	cli.Execute()
}
