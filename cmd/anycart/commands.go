package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/myanycart/anycart-go/internal/currency"
	"github.com/myanycart/anycart-go/internal/model"
	"github.com/myanycart/anycart-go/internal/service"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "google" {
		idToken, err := a.google.SignIn(ctx)
		if err != nil {
			return err
		}
		user, err := a.auth.LoginGoogle(ctx, idToken)
		if err != nil {
			return err
		}
		printWelcome(user)
		return nil
	}

	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	printWelcome(user)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	password2 := fs.String("password2", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, model.RegisterRequest{
		FirstName: *first,
		LastName:  *last,
		Email:     *email,
		Password:  *password,
		Password2: *password2,
	})
	if err != nil {
		return err
	}
	printWelcome(user)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	reload := fs.Bool("reload", false, "refetch the profile from the backend")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *reload {
		me, err := a.auth.ReloadUser(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>", me.FullName(), me.Email)
		if !me.EmailConfirmed {
			fmt.Print(" (email not confirmed)")
		}
		fmt.Println()
		return nil
	}

	user := a.auth.CurrentUser()
	if user == nil {
		return service.ErrNotLoggedIn
	}
	if user.Name != "" {
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
	} else if user.Email != "" {
		fmt.Println(user.Email)
	} else {
		fmt.Printf("user #%d\n", user.ID)
	}
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	a.cart.Load()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
		name := fs.String("name", "", "item name")
		amount := fs.Float64("amount", 1, "quantity")
		price := fs.Float64("price", 0, "unit price")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		item, err := a.cart.Add(model.LineItem{ItemName: *name, ItemAmount: *amount, ItemPrice: *price})
		if err != nil {
			return err
		}
		fmt.Printf("added %s (%s)\n", item.ItemName, item.ID)
		return nil

	case "edit":
		fs := flag.NewFlagSet("cart edit", flag.ContinueOnError)
		id := fs.String("id", "", "item id")
		name := fs.String("name", "", "item name")
		amount := fs.Float64("amount", 1, "quantity")
		price := fs.Float64("price", 0, "unit price")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("cart edit requires -id")
		}
		return a.cart.Edit(model.LineItem{ID: *id, ItemName: *name, ItemAmount: *amount, ItemPrice: *price})

	case "rm":
		if len(rest) != 1 {
			return errors.New("cart rm requires an item id")
		}
		return a.cart.Delete(rest[0])

	case "list":
		return a.printCart(a.cart.Items())

	case "clear":
		return a.cart.Clear()

	case "watch":
		updates, err := a.cart.Watch(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "watching cart for changes (ctrl-c to stop)")
		for items := range updates {
			if err := a.printCart(items); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown cart command %q", cmd)
	}
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	name := fs.String("name", "", "cart name")
	store := fs.String("store", "", "store name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.cart.Load()
	purchase, err := a.purchases.Checkout(ctx, *name, *store)
	if err != nil {
		return err
	}
	fmt.Printf("saved purchase %s (%s)\n", purchase.CartName, purchase.ID)
	return nil
}

func (a *app) cmdHistory(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		purchases, err := a.purchases.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTORE\tDATE\tTOTAL")
		for _, p := range purchases {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.CartName, p.StoreName,
				p.CompletedAt.Format("2006-01-02"),
				currency.Format(p.Total(), p.Currency))
		}
		return w.Flush()

	case "show":
		if len(rest) != 1 {
			return errors.New("history show requires a purchase id")
		}
		p, err := a.purchases.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s", p.CartName)
		if p.StoreName != "" {
			fmt.Printf(" @ %s", p.StoreName)
		}
		fmt.Printf(" (%s)\n", p.CompletedAt.Format("2006-01-02 15:04"))
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, it := range p.Items {
			fmt.Fprintf(w, "  %s\tx%d\t%s\n", it.Name, it.Quantity, it.UnitPrice)
		}
		w.Flush()
		fmt.Printf("total: %s\n", currency.Format(p.Total(), p.Currency))
		return nil

	case "rm":
		if len(rest) != 1 {
			return errors.New("history rm requires a purchase id")
		}
		return a.purchases.Delete(ctx, rest[0])

	default:
		return fmt.Errorf("unknown history command %q", cmd)
	}
}

func (a *app) cmdCurrency(args []string) error {
	if len(args) == 0 {
		code := a.currencies.Get()
		fmt.Printf("%s (%s)\n", code, currency.Symbol(code))
		return nil
	}

	code := strings.ToUpper(args[0])
	if !currency.Valid(code) {
		return fmt.Errorf("unknown currency code %q (try one of %s)",
			args[0], strings.Join(currency.PopularCurrencies, ", "))
	}
	a.currencies.Set(code)
	fmt.Printf("currency set to %s (%s)\n", code, currency.Symbol(code))
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	avatar := fs.String("avatar", "", "path to an avatar image")
	removeAvatar := fs.Bool("remove-avatar", false, "clear the stored avatar")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var req model.UpdateMeRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "first":
			req.FirstName = first
		case "last":
			req.LastName = last
		}
	})
	if *avatar != "" {
		content, err := os.ReadFile(*avatar)
		if err != nil {
			return fmt.Errorf("reading avatar: %w", err)
		}
		req.Avatar = &model.AvatarUpload{Filename: filepath.Base(*avatar), Content: content}
	}
	req.RemoveAvatar = *removeAvatar

	me, err := a.auth.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("profile updated: %s <%s>\n", me.FullName(), me.Email)
	return nil
}

func (a *app) cmdSendConfirmation(ctx context.Context) error {
	detail, err := a.auth.SendConfirmationEmail(ctx)
	if err != nil {
		return err
	}
	fmt.Println(detail)
	return nil
}

func (a *app) printCart(items []model.LineItem) error {
	code := a.currencies.Get()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tITEM\tQTY\tPRICE\tTOTAL")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\t%s\n",
			it.ID, it.ItemName, it.ItemAmount,
			currency.Format(it.ItemPrice, code),
			currency.Format(it.Total(), code))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("grand total: %s\n", currency.Format(model.CartTotal(items), code))
	return nil
}

func printWelcome(user *model.User) {
	switch {
	case user == nil:
		fmt.Println("logged in")
	case user.Name != "":
		fmt.Printf("logged in as %s\n", user.Name)
	case user.Email != "":
		fmt.Printf("logged in as %s\n", user.Email)
	default:
		fmt.Printf("logged in as user #%d\n", user.ID)
	}
}
