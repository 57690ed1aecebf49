package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/krono-coffee/ordering-client/internal/cli"
	"github.com/krono-coffee/ordering-client/pkg/global"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Error loading .env file: %v", err)
		}
	}

	log.Printf("Krono Coffee ordering client, service %s", global.GetAPIBase())

	app := cli.NewApp()
	if err := cli.Run(app, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Client terminated: %v", err)
	}
}
