// Command hashgen prints the bcrypt hash of each password given on
// the command line, for seeding test fixtures.
package main

import (
	"fmt"
	"os"

	"github.com/userhub/userhub/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashgen <password> [password...]")
		os.Exit(1)
	}

	hasher := service.NewBcryptHasher()
	for _, password := range os.Args[1:] {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing %q: %v\n", password, err)
			continue
		}
		fmt.Printf("%s\n", hash)
	}
}
