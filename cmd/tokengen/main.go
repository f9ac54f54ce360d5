// Package main provides a CLI tool for minting development credentials for
// the secid-gateway API: HS256 bearer tokens and bcrypt API key hashes.
// Tokens minted here only work against a server configured with the same
// signing key.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"secid-gateway/pkg/secrets"
)

const defaultTokenTTL = 1 * time.Hour

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in,omitempty"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenSubject := tokenCmd.String("subject", "", "Token subject. Generated if empty.")
	tokenKey := tokenCmd.String("key", "", "HS256 signing key (or SECID_JWT_SIGNING_KEY)")
	tokenTTL := tokenCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	tokenJSON := tokenCmd.Bool("json", false, "Output as JSON")

	hashCmd := flag.NewFlagSet("hash", flag.ExitOnError)
	hashKey := hashCmd.String("key", "", "API key to hash. Generated if empty.")
	hashJSON := hashCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "token":
		tokenCmd.Parse(os.Args[2:])
		generateToken(*tokenSubject, *tokenKey, *tokenTTL, *tokenJSON)
	case "hash":
		hashCmd.Parse(os.Args[2:])
		generateHash(*hashKey, *hashJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Mint development credentials for the secid-gateway API

Usage:
  tokengen <command> [flags]

Commands:
  token     Generate an HS256 bearer token
  hash      Generate an API key and its bcrypt hash

Examples:
  # Bearer token signed with the server's key
  tokengen token -key "$SECID_JWT_SIGNING_KEY"

  # Token with custom subject and TTL
  tokengen token -key mykey -subject batch-loader -ttl 24h

  # Fresh API key plus the hash to put in SECID_API_KEY_HASH
  tokengen hash

  # Hash an existing key
  tokengen hash -key my-existing-key

Use "tokengen <command> -h" for more information about a command.`)
}

func generateToken(subject, key string, ttl time.Duration, jsonOutput bool) {
	if key == "" {
		key = os.Getenv("SECID_JWT_SIGNING_KEY")
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "Signing key required: pass -key or set SECID_JWT_SIGNING_KEY")
		os.Exit(1)
	}
	if subject == "" {
		subject = uuid.New().String()
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			Type:      "bearer_token",
			ExpiresIn: ttl.String(),
			Claims:    map[string]any{"sub": subject},
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}
	fmt.Println("Bearer Token (HS256)")
	fmt.Println("====================")
	fmt.Printf("Subject:    %s\n", subject)
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/v1/...")
}

func generateHash(key string, jsonOutput bool) {
	generated := false
	if key == "" {
		fresh, err := secrets.Generate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
			os.Exit(1)
		}
		key = fresh
		generated = true
	}

	hash, err := secrets.Hash(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing key: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		out := map[string]string{
			"hash":  hash,
			"usage": "export SECID_API_KEY_HASH='<hash>'",
		}
		if generated {
			out["key"] = key
		}
		printJSON(out)
		return
	}
	fmt.Println("API Key Hash (bcrypt)")
	fmt.Println("=====================")
	if generated {
		fmt.Printf("Key:  %s\n", key)
	}
	fmt.Printf("Hash: %s\n", hash)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  export SECID_API_KEY_HASH='" + hash + "'")
	fmt.Println("  curl -H \"X-API-Key: <key>\" http://localhost:8080/v1/...")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
