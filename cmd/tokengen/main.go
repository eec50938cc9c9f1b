// Command tokengen prints a bearer token for the catalog write routes,
// signed with the server's secret_key.
package main

import (
	"fmt"
	"log"

	"github.com/dmitrijs2005/scpcatalog/internal/server/auth"
	"github.com/dmitrijs2005/scpcatalog/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.SecretKey == "" {
		log.Fatal("secret_key is not configured")
	}

	if cfg.TokenSubject == "" {
		log.Fatal("token_subject is empty")
	}

	token, err := auth.GenerateToken(cfg.TokenSubject, []byte(cfg.SecretKey), cfg.TokenValidityDuration)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	fmt.Println(token)
}
