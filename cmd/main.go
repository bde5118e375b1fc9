package main

import (
	"os"

	"github.com/KromaEnergia/api-colaborador/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
