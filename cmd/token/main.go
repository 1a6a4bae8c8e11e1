// Command token issues bearer tokens for Ledgerly operators and webhooks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerly/backend/config"
	"github.com/ledgerly/backend/internal/application/adapter"
	"github.com/ledgerly/backend/internal/integration/adapters"
)

func main() {
	var (
		subject string
		scopes  string
		ttl     time.Duration
	)

	flag.StringVar(&subject, "subject", "", "Token subject, e.g. an operator e-mail or \"quoteforge\"")
	flag.StringVar(&scopes, "scopes", adapter.ScopeLedgerRead+","+adapter.ScopeLedgerWrite, "Comma separated scopes")
	flag.DurationVar(&ttl, "ttl", 0, "Token lifetime (default: JWT_EXPIRY)")
	flag.Parse()

	if subject == "" {
		fmt.Fprintln(os.Stderr, "Usage: token -subject <name> [-scopes ledger:read,ledger:write] [-ttl 720h]")
		fmt.Fprintf(os.Stderr, "Known scopes: %s, %s, %s\n", adapter.ScopeLedgerRead, adapter.ScopeLedgerWrite, adapter.ScopeWebhook)
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	if ttl == 0 {
		ttl = cfg.JWT.AccessTokenExpiry
	}

	var granted []string
	for _, s := range strings.Split(scopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			granted = append(granted, s)
		}
	}

	token, err := adapters.NewTokenService(cfg.JWT.Secret).IssueAccessToken(context.Background(), subject, granted, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
