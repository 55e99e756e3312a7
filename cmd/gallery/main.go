package main

import (
	"log"

	"github.com/showcasehub/gallery/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("gallery failed to start: %v", err)
	}
}
