package main

import (
	"fmt"
	"os"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

// Prints a bcrypt hash using the server's BCRYPT_COST and password rules,
// for inserting accounts straight into the users table.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: go run scripts/generate_password.go <password>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	passwords := auth.NewPasswordManager(cfg)
	hash, err := passwords.HashPassword(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("Error generating hash")
	}

	if err := passwords.VerifyPassword(os.Args[1], hash); err != nil {
		log.WithError(err).Fatal("Hash verification failed")
	}

	fmt.Println(hash)
}
