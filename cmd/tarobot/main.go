package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/pamnard/TaroBot/core/cmd"
	"github.com/pamnard/TaroBot/internal/bot"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        bot.LoadConfig,
		Bootstrap:         bot.Bootstrap,
	})
	if err != nil {
		log.Fatalf("tarobot: %v", err)
	}
}
