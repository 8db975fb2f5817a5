// Command issue-token mints an access token for an allow-listed owner.
//
// Usage: issue-token -user <id> [-ttl 720h]
//
// The token is printed to stdout. Exit codes: 0 = success, 1 = error.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/lingua-assistant-backend/internal/auth"
	"github.com/heartmarshall/lingua-assistant-backend/internal/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config file")
	userID := flag.String("user", "", "user id to put in the token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to auth.access_token_ttl)")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lifetime := cfg.Auth.AccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, lifetime)
	authenticator := auth.NewAuthenticator(slog.Default(), jwtManager, cfg.Auth.AllowedUsers())

	token, err := authenticator.IssueToken(*userID)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Fprintln(os.Stdout, token)
	fmt.Fprintf(os.Stderr, "token for %q expires at %s\n", *userID, time.Now().Add(lifetime).UTC().Format(time.RFC3339))
}
