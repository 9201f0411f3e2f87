package main

import (
	"log"

	"PaypalIPNListener/config"
	"PaypalIPNListener/internal/listener"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	if err := listener.Run(cfg); err != nil {
		log.Fatalf("IPN listener error: %s", err)
	}
}
