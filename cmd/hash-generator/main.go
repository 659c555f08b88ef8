// Command hash-generator prints bcrypt hashes for passwords, for seeding
// users directly in the database. Passwords come from the arguments, or one
// per line on stdin when no arguments are given.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor (4-31)")
	strict := flag.Bool("strict", false, "reject passwords that violate the signup credential policy")
	flag.Parse()

	passwords := flag.Args()
	if len(passwords) == 0 {
		var err error
		if passwords, err = readLines(os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	if failed := generate(os.Stdout, os.Stderr, auth.NewBcryptHasher(*cost), passwords, *strict); failed > 0 {
		os.Exit(1)
	}
}

// generate writes one "password<TAB>hash" line per password and returns how many failed.
func generate(out, errOut io.Writer, hasher auth.PasswordHasher, passwords []string, strict bool) int {
	failed := 0
	for _, password := range passwords {
		if strict {
			// Any username that passes the policy works here; only the password is checked.
			if err := domain.ValidateCredentials("placeholder", password); err != nil {
				fmt.Fprintf(errOut, "Rejected %q: %v\n", password, err)
				failed++
				continue
			}
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(errOut, "Error generating hash for %q: %v\n", password, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", password, hash)
	}
	return failed
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
