// cmd/server is the plain server binary, for deployments that do not need
// the full vastra CLI. `vastra serve` runs the same boot path.
package main

import (
	"log"

	"github.com/shashiranjanraj/vastra/internal/server"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
