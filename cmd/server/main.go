package main

import (
	"github.com/ecoloop/backend/cmd"
)

func main() {
	cmd.Execute()
}
