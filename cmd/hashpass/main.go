package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/hrgrifes/atelier-backend/pkg/config"
	"github.com/hrgrifes/atelier-backend/pkg/security"
)

// hashpass produces the argon2id hash that ATELIER_ADMIN_PASSWORD_HASH
// expects. Reads the password from -password or, when omitted, from stdin so
// the secret stays out of shell history.
func main() {
	_ = godotenv.Load()

	password := flag.String("password", "", "password to hash (omit to read from stdin)")
	flag.Parse()

	secret := *password
	if secret == "" {
		fmt.Fprint(os.Stderr, "password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading password: %v\n", err)
			os.Exit(1)
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "password must not be empty")
		os.Exit(1)
	}

	// Only the password section is needed; the full config demands secrets
	// that do not exist yet when this tool runs.
	var cfg config.PasswordConfig
	if err := envconfig.Process(config.EnvPrefix, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parsing config: %v\n", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(secret, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashing password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
