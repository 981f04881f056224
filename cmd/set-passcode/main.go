// CLI tool to protect the API with a passcode. Hashes the passcode with
// bcrypt, mints an access token, and prints the .env lines to add.
// Usage: go run ./cmd/set-passcode
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasscodeLen = 4

func main() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Passcode: ")
	passcode, _ := reader.ReadString('\n')
	passcode = strings.TrimSpace(passcode)

	fmt.Print("Repeat passcode: ")
	again, _ := reader.ReadString('\n')
	again = strings.TrimSpace(again)

	if err := validatePasscode(passcode, again); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing passcode: %v\n", err)
		os.Exit(1)
	}

	token := uuid.New().String()

	fmt.Printf("\nAdd these lines to .env and restart the API:\n\n")
	// bcrypt hashes contain '$'; quote them so godotenv does not expand.
	fmt.Printf("APP_PASSCODE_HASH='%s'\n", hash)
	fmt.Printf("APP_TOKEN=%s\n", token)
}

func validatePasscode(passcode, again string) error {
	if len(passcode) < minPasscodeLen {
		return fmt.Errorf("passcode must be at least %d characters", minPasscodeLen)
	}
	if passcode != again {
		return fmt.Errorf("passcodes do not match")
	}
	return nil
}
