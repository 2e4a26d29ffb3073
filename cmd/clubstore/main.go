// Command clubstore is the club's local console: storefront, membership and
// admin operations over the on-device database. There is no server; every
// command opens the store, runs and exits.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/example/zyrix-club/internal/auth"
	"github.com/example/zyrix-club/internal/cart"
	"github.com/example/zyrix-club/internal/checkout"
	"github.com/example/zyrix-club/internal/config"
	"github.com/example/zyrix-club/internal/domain/order"
	"github.com/example/zyrix-club/internal/domain/product"
	"github.com/example/zyrix-club/internal/domain/sponsor"
	"github.com/example/zyrix-club/internal/kvstore"
	"github.com/example/zyrix-club/internal/query"
	"github.com/example/zyrix-club/internal/repository"
	"github.com/example/zyrix-club/internal/store"
	"github.com/example/zyrix-club/internal/verification"
)

// app bundles the wired services for command handlers.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	kv       kvstore.Store
	users    *repository.Users
	products *repository.Products
	sponsors *repository.Sponsors
	orders   *repository.Orders
	carts    *cart.Service
	codes    *verification.Service
	auth     *auth.Service
	checkout *checkout.Service
	stats    *query.Handler
	sessions *auth.SessionService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	kv, err := kvstore.OpenLevelDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	adminDigest, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("admin bootstrap password: %w", err)
	}
	st := store.New(kv, store.Bootstrap{
		Email:          cfg.AdminEmail,
		PasswordDigest: adminDigest,
		FirstName:      cfg.AdminFirstName,
		LastName:       cfg.AdminLastName,
		Phone:          cfg.AdminPhone,
	}, log)

	users := repository.NewUsers(st)
	products := repository.NewProducts(st)
	codes := verification.New(st)
	sessions := auth.NewSessionService(cfg.SessionSecret, cfg.SessionTTL)
	carts := cart.New(kv, products)

	return &app{
		cfg:      cfg,
		log:      log,
		kv:       kv,
		users:    users,
		products: products,
		sponsors: repository.NewSponsors(st),
		orders:   repository.NewOrders(st),
		carts:    carts,
		codes:    codes,
		auth:     auth.NewService(users, codes, sessions),
		checkout: checkout.New(st, carts, log),
		stats:    query.NewHandler(st),
		sessions: sessions,
	}, nil
}

func (a *app) close() {
	if err := a.kv.Close(); err != nil {
		a.log.WithError(err).Warn("closing database")
	}
}

// identity returns the signed-in email from the saved session token, or the
// guest marker.
func (a *app) identity() string {
	raw, err := os.ReadFile(a.cfg.SessionFile)
	if err != nil {
		return cart.GuestIdentity
	}
	claims, err := a.sessions.Validate(string(raw))
	if err != nil {
		return cart.GuestIdentity
	}
	return claims.Email
}

func main() {
	cliApp := &cli.App{
		Name:  "clubstore",
		Usage: "Zyrix club storefront and admin console",
		Commands: []*cli.Command{
			registerCommand(),
			verifyCommand(),
			loginCommand(),
			logoutCommand(),
			productCommand(),
			sponsorCommand(),
			cartCommand(),
			checkoutCommand(),
			ordersCommand(),
			usersCommand(),
			statsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func withApp(fn func(a *app, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return fn(a, c)
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "create a member account",
		ArgsUsage: "<email> <first> <last> <phone> <password>",
		Action: withApp(func(a *app, c *cli.Context) error {
			if c.NArg() != 5 {
				return errors.New("expected: email first last phone password")
			}
			args := c.Args()
			code, err := a.auth.Register(args.Get(0), args.Get(1), args.Get(2), args.Get(3), args.Get(4))
			if err != nil {
				return err
			}
			fmt.Printf("account created; verification code: %s\n", code)
			return nil
		}),
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "verify an account, or resend its code",
		ArgsUsage: "<email> [code]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "resend", Usage: "issue a fresh code instead of consuming one"},
		},
		Action: withApp(func(a *app, c *cli.Context) error {
			email := c.Args().Get(0)
			if email == "" {
				return errors.New("email is required")
			}
			if c.Bool("resend") {
				code, err := a.codes.Reissue(email)
				if err != nil {
					return err
				}
				fmt.Printf("new verification code: %s\n", code)
				return nil
			}
			if err := a.codes.Consume(email, c.Args().Get(1)); err != nil {
				return err
			}
			fmt.Println("account verified")
			return nil
		}),
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "sign in and save the session",
		ArgsUsage: "<email> <password>",
		Action: withApp(func(a *app, c *cli.Context) error {
			email, password := c.Args().Get(0), c.Args().Get(1)
			token, u, err := a.auth.Login(email, password)
			if err != nil {
				return err
			}
			if err := os.WriteFile(a.cfg.SessionFile, []byte(token), 0o600); err != nil {
				return err
			}
			// Carry the guest cart into the account
			if _, err := a.carts.Merge(cart.GuestIdentity, u.Email); err != nil {
				a.log.WithError(err).Warn("guest cart merge failed")
			}
			fmt.Printf("signed in as %s (%s)\n", u.Email, u.Role)
			return nil
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "drop the saved session",
		Action: withApp(func(a *app, c *cli.Context) error {
			if err := os.Remove(a.cfg.SessionFile); err != nil && !os.IsNotExist(err) {
				return err
			}
			fmt.Println("signed out")
			return nil
		}),
	}
}

func productCommand() *cli.Command {
	return &cli.Command{
		Name:  "product",
		Usage: "catalog administration",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the catalog",
				Action: withApp(func(a *app, c *cli.Context) error {
					products, err := a.products.List()
					if err != nil {
						return err
					}
					for _, p := range products {
						fmt.Printf("%s  %-32s  DOP %6d  stock %3d  %s\n", p.ID, p.Title, p.Price, p.Stock, p.Category)
					}
					return nil
				}),
			},
			{
				Name:      "add",
				Usage:     "add a product",
				ArgsUsage: "<title> <price> <stock>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "image"},
					&cli.BoolFlag{Name: "featured"},
				},
				Action: withApp(func(a *app, c *cli.Context) error {
					price, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return fmt.Errorf("bad price: %w", err)
					}
					stock, err := strconv.Atoi(c.Args().Get(2))
					if err != nil {
						return fmt.Errorf("bad stock: %w", err)
					}
					p, err := a.products.Create(product.Product{
						Title:    c.Args().Get(0),
						Price:    price,
						Stock:    stock,
						Category: c.String("category"),
						Image:    c.String("image"),
						Featured: c.Bool("featured"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("created %s\n", p.ID)
					return nil
				}),
			},
			{
				Name:      "set",
				Usage:     "update product fields",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "price", Value: -1},
					&cli.IntFlag{Name: "stock", Value: -1},
					&cli.StringFlag{Name: "title"},
				},
				Action: withApp(func(a *app, c *cli.Context) error {
					patch := repository.ProductUpdate{}
					if c.IsSet("price") {
						v := c.Int("price")
						patch.Price = &v
					}
					if c.IsSet("stock") {
						v := c.Int("stock")
						patch.Stock = &v
					}
					if c.IsSet("title") {
						v := c.String("title")
						patch.Title = &v
					}
					p, err := a.products.Update(c.Args().Get(0), patch)
					if err != nil {
						return err
					}
					fmt.Printf("%s  DOP %d  stock %d\n", p.Title, p.Price, p.Stock)
					return nil
				}),
			},
			{
				Name:      "rm",
				Usage:     "remove a product",
				ArgsUsage: "<id>",
				Action: withApp(func(a *app, c *cli.Context) error {
					return a.products.Delete(c.Args().Get(0))
				}),
			},
		},
	}
}

func sponsorCommand() *cli.Command {
	return &cli.Command{
		Name:  "sponsor",
		Usage: "sponsorship intake and decisions",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list requests",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "pending, active or rejected"},
				},
				Action: withApp(func(a *app, c *cli.Context) error {
					var (
						list []sponsor.Sponsor
						err  error
					)
					if s := c.String("status"); s != "" {
						list, err = a.sponsors.ListByStatus(sponsor.Status(s))
					} else {
						list, err = a.sponsors.List()
					}
					if err != nil {
						return err
					}
					for _, sp := range list {
						fmt.Printf("%s  %-10s  %-20s  %s\n", sp.ID, sp.Status, sp.Brand, sp.Rep)
					}
					return nil
				}),
			},
			{
				Name:      "apply",
				Usage:     "submit a sponsorship request",
				ArgsUsage: "<rep> <email> <brand>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "rationale"},
					&cli.StringFlag{Name: "offer"},
					&cli.StringFlag{Name: "expectation"},
				},
				Action: withApp(func(a *app, c *cli.Context) error {
					sp, err := a.sponsors.Create(sponsor.Sponsor{
						Rep:          c.Args().Get(0),
						ContactEmail: c.Args().Get(1),
						Brand:        c.Args().Get(2),
						Rationale:    c.String("rationale"),
						Offer:        c.String("offer"),
						Expectation:  c.String("expectation"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("request submitted: %s\n", sp.ID)
					return nil
				}),
			},
			{
				Name:      "approve",
				ArgsUsage: "<id>",
				Action: withApp(func(a *app, c *cli.Context) error {
					_, err := a.sponsors.Approve(c.Args().Get(0))
					return err
				}),
			},
			{
				Name:      "reject",
				ArgsUsage: "<id>",
				Action: withApp(func(a *app, c *cli.Context) error {
					_, err := a.sponsors.Reject(c.Args().Get(0))
					return err
				}),
			},
		},
	}
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "the session cart (guest until you log in)",
		Subcommands: []*cli.Command{
			{
				Name: "show",
				Action: withApp(func(a *app, c *cli.Context) error {
					cc, err := a.carts.Get(a.identity())
					if err != nil {
						return err
					}
					for _, id := range cc.ProductIDs() {
						line := cc[id]
						fmt.Printf("%dx %-32s DOP %d\n", line.Quantity, line.Title, line.UnitPrice*line.Quantity)
					}
					fmt.Printf("total: DOP %d\n", cc.Total())
					return nil
				}),
			},
			{
				Name:      "add",
				ArgsUsage: "<product-id> [qty]",
				Action: withApp(func(a *app, c *cli.Context) error {
					qty := 1
					if arg := c.Args().Get(1); arg != "" {
						var err error
						if qty, err = strconv.Atoi(arg); err != nil {
							return fmt.Errorf("bad quantity: %w", err)
						}
					}
					_, err := a.carts.Add(a.identity(), c.Args().Get(0), qty)
					return err
				}),
			},
			{
				Name:      "rm",
				ArgsUsage: "<product-id>",
				Action: withApp(func(a *app, c *cli.Context) error {
					_, err := a.carts.Remove(a.identity(), c.Args().Get(0))
					return err
				}),
			},
			{
				Name: "clear",
				Action: withApp(func(a *app, c *cli.Context) error {
					return a.carts.Clear(a.identity())
				}),
			},
		},
	}
}

func checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "purchase the cart contents",
		Action: withApp(func(a *app, c *cli.Context) error {
			identity := a.identity()
			if identity == cart.GuestIdentity {
				return errors.New("log in before checking out")
			}
			o, err := a.checkout.Checkout(identity)
			if err != nil {
				return err
			}
			printReceipt(o)
			return nil
		}),
	}
}

func printReceipt(o *order.Order) {
	fmt.Printf("order %s (%s)\n", o.Number, o.CreatedAt.Format("2006-01-02"))
	for _, item := range o.Items {
		fmt.Printf("  %dx %-32s DOP %d\n", item.Quantity, item.Title, item.Subtotal())
	}
	fmt.Printf("  TOTAL: %s %d\n", o.Currency, o.Total)
}

func ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "list your orders (admins see all with --all)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all"},
		},
		Action: withApp(func(a *app, c *cli.Context) error {
			var (
				list []order.Order
				err  error
			)
			if c.Bool("all") {
				list, err = a.orders.List()
			} else {
				list, err = a.orders.ListByUser(a.identity())
			}
			if err != nil {
				return err
			}
			for _, o := range list {
				fmt.Printf("%s  %s  %s %d  (%d items)\n",
					o.Number, o.UserEmail, o.Currency, o.Total, len(o.Items))
			}
			return nil
		}),
	}
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "list member accounts",
		Action: withApp(func(a *app, c *cli.Context) error {
			users, err := a.users.List()
			if err != nil {
				return err
			}
			for _, u := range users {
				verified := " "
				if u.Verified {
					verified = "*"
				}
				fmt.Printf("%s %-28s  %-6s  %s %s\n", verified, u.Email, u.Role, u.FirstName, u.LastName)
			}
			return nil
		}),
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "dashboard aggregate",
		Action: withApp(func(a *app, c *cli.Context) error {
			stats, err := a.stats.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("users:      %d (%d verified)\n", stats.TotalUsers, stats.VerifiedUsers)
			fmt.Printf("products:   %d (%d in stock)\n", stats.TotalProducts, stats.ProductsInStock)
			fmt.Printf("orders:     %d (DOP %d revenue)\n", stats.TotalOrders, stats.TotalRevenue)
			fmt.Printf("sponsors:   %d active, %d pending\n", stats.ActiveSponsors, stats.PendingSponsors)
			return nil
		}),
	}
}
