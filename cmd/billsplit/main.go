package main

import (
	"billsplit/internal/cli"
	"billsplit/pkg/logging"
)

func main() {
	logging.Setup()
	cli.Execute()
}
