package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/khoahotran/notion-blog/pkg/auth"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	subject := os.Getenv("ADMIN_SUBJECT")
	if subject == "" {
		subject = "admin"
	}

	lifespan := 24 * time.Hour
	if raw := os.Getenv("TOKEN_LIFESPAN"); raw != "" {
		lifespan, err = time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid TOKEN_LIFESPAN: %v", err)
		}
	}

	token, err := auth.NewJWTService(secret, lifespan).GenerateToken(subject)
	if err != nil {
		log.Fatalf("cannot issue token: %v", err)
	}

	fmt.Println(token)
}
