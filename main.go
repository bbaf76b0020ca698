package main

import (
	"log"
	"os"

	"github.com/Salastil/dlp-tui/internal"
)

func main() {
	if err := internal.Run(); err != nil {
		log.SetFlags(0)
		log.Println("[X]", err)
		os.Exit(1)
	}
}
