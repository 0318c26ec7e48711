package main

import (
	"mailmix/cmd/handlers"
	"mailmix/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
