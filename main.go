package main

import (
	"github.com/joho/godotenv"

	"github.com/wordman/wordman/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
