// Command tokengen выпускает JWT владельца ссылок для вызова /api/links.
//
//	AUTH_JWT_SECRET=secret tokengen -owner user-1 -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fsdevblog/shortlinks/internal/tokens"
)

func main() {
	owner := flag.String("owner", "", "Идентификатор владельца (claim sub)")
	ttl := flag.Duration("ttl", 24*time.Hour, "Срок действия токена") //nolint:mnd
	secret := flag.String("j", os.Getenv("AUTH_JWT_SECRET"), "Ключ подписи JWT")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "jwt secret is required: set AUTH_JWT_SECRET or -j")
		os.Exit(2) //nolint:mnd
	}

	token, err := tokens.GenerateOwnerJWT(*owner, *ttl, []byte(*secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token) //nolint:forbidigo
}
