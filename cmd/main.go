package main

import (
	"log"

	_ "time/tzdata"

	"github.com/241luca/soccer-manager/cmd/server"
	"github.com/241luca/soccer-manager/internal/adapters/config"
)

func main() {
	cfg := config.Get()

	s, err := server.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	s.Start()
}
