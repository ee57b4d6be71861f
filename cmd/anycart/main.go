package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/myanycart/anycart-go/internal/api"
	"github.com/myanycart/anycart-go/internal/auth"
	"github.com/myanycart/anycart-go/internal/config"
	"github.com/myanycart/anycart-go/internal/repository"
	"github.com/myanycart/anycart-go/internal/service"
)

const usage = `anycart - AnyCart storefront client

Usage:
  anycart login -u <username> -p <password>
  anycart login google
  anycart register -email <email> -password <pw> [-password2 <pw>] [-first <name>] [-last <name>]
  anycart logout
  anycart whoami [-reload]
  anycart cart add -name <name> -amount <n> -price <p>
  anycart cart edit -id <id> -name <name> -amount <n> -price <p>
  anycart cart rm <id>
  anycart cart list
  anycart cart clear
  anycart cart watch
  anycart checkout [-name <cart name>] [-store <store name>]
  anycart history list
  anycart history show <id>
  anycart history rm <id>
  anycart profile [-first <name>] [-last <name>] [-avatar <file>] [-remove-avatar]
  anycart currency [code]
  anycart send-confirmation
`

// app bundles the wired services for the command handlers.
type app struct {
	cfg        config.Config
	sessions   *repository.SessionStore
	currencies *repository.CurrencyStore
	auth       *service.AuthService
	cart       *service.CartService
	purchases  *service.PurchaseService
	google     *auth.GoogleFlow
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := config.Load()

	sessions := repository.NewSessionStore(cfg.DataDir)
	currencies := repository.NewCurrencyStore(cfg.DataDir, cfg.DefaultCurrency)
	client := api.New(cfg, sessions)
	cartSvc := service.NewCartService(repository.NewCartStore(cfg.DataDir))

	a := &app{
		cfg:        cfg,
		sessions:   sessions,
		currencies: currencies,
		auth:       service.NewAuthService(client, sessions),
		cart:       cartSvc,
		purchases:  service.NewPurchaseService(client, cartSvc, currencies),
		google:     auth.NewGoogleFlow(cfg),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1:]); err != nil {
		// A caller-initiated abort is a silent cancellation, not a failure.
		if ctx.Err() != nil {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "error:", message(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "register":
		return a.cmdRegister(ctx, rest)
	case "logout":
		a.auth.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.cmdWhoami(ctx, rest)
	case "cart":
		return a.cmdCart(ctx, rest)
	case "checkout":
		return a.cmdCheckout(ctx, rest)
	case "history":
		return a.cmdHistory(ctx, rest)
	case "profile":
		return a.cmdProfile(ctx, rest)
	case "currency":
		return a.cmdCurrency(rest)
	case "send-confirmation":
		return a.cmdSendConfirmation(ctx)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run anycart help)", cmd)
	}
}

// message maps errors to the line shown to the user. A 401 that survived
// the client's one-shot refresh means the session is invalid.
func message(err error) string {
	if api.IsUnauthorized(err) {
		return service.ErrSessionExpired.Error()
	}
	return err.Error()
}
