// Command token mints a development bearer token for the admin endpoints.
//
//	JWT_SECRET=dev go run ./cmd/token -user 1 -role admin
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"eventlistings/internal/adapters/auth"
	"eventlistings/internal/domain"
)

func main() {
	var (
		userID = flag.Int64("user", 1, "user id placed in the sub claim")
		role   = flag.String("role", string(domain.RoleAdmin), "role: user, admin or owner")
		email  = flag.String("email", "", "optional email claim")
		ttl    = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET must be set")
		os.Exit(2)
	}

	caller := domain.AuthContext{UserID: *userID, Role: domain.ParseRole(*role)}
	token, err := auth.NewJWT(secret, *ttl).Issue(caller, *email)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
