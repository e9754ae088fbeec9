package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// Mints an HS256 bearer token for a user id, signed with JWT_SECRET.
//
//	go run ./scripts -user <id> [-ttl 24h]
func main() {
	_ = godotenv.Load()

	userID := flag.String("user", "", "user id to put in the sub claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if *userID == "" || secret == "" {
		fmt.Fprintln(os.Stderr, "usage: JWT_SECRET=... go run ./scripts -user <id>")
		os.Exit(2)
	}

	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   *userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
	}).SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
