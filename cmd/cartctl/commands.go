package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/spf13/cobra"
)

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "cartctl",
		Short: "Inspect and edit storefront carts",
		Long: `Inspect and edit storefront carts.

Without --user the anonymous cart in LOCAL_SLOT_DIR is used, scoped by
--namespace. With --user the user's cart in MongoDB is used.`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "path to a config file")
	flags.StringVar(&a.userID, "user", "", "operate on this user's remote cart")
	flags.StringVar(&a.namespace, "namespace", domain.DefaultNamespace, "local slot of the anonymous cart")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	flags.BoolVar(&a.catalogCache, "catalog-cache", false, "read products through the Redis product cache")

	root.AddCommand(
		newShowCmd(a),
		newAddCmd(a),
		newSetCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newRefreshCmd(a),
		newProductsCmd(a),
		newTokenCmd(a),
	)
	closeAfterRun(root.Commands(), a)
	return root
}

// closeAfterRun wraps every command so it closes what it opened.
// PersistentPostRun is skipped on error.
func closeAfterRun(cmds []*cobra.Command, a *app) {
	for _, c := range cmds {
		closeAfterRun(c.Commands(), a)
		if c.RunE == nil {
			continue
		}
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.close()
			return run(cmd, args)
		}
	}
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the cart with its totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openCart(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(s.Snapshot())
			}
			return printCart(a.out, s.Snapshot())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id> [quantity]",
		Short: "Add a product, folding into an existing line",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity := 1
			if len(args) == 2 {
				q, err := parseQuantity(args[1])
				if err != nil {
					return err
				}
				quantity = q
			}
			return a.mutate(cmd, func(s *cart.Session) (domain.Snapshot, error) {
				return s.AddToCart(cmd.Context(), args[0], quantity)
			})
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <item-id> <quantity>",
		Short: "Set the quantity of a line item; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *cart.Session) (domain.Snapshot, error) {
				return s.UpdateQuantity(cmd.Context(), args[0], quantity)
			})
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(s *cart.Session) (domain.Snapshot, error) {
				return s.RemoveFromCart(cmd.Context(), args[0])
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every line item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.mutate(cmd, func(s *cart.Session) (domain.Snapshot, error) {
				return s.ClearCart(cmd.Context())
			})
		},
	}
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload the cart against the current catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.mutate(cmd, func(s *cart.Session) (domain.Snapshot, error) {
				return s.RefreshCart(cmd.Context())
			})
		},
	}
}

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.openCatalog()
			if err != nil {
				return err
			}
			products, err := repo.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			return printProducts(a.out, products)
		},
	}
	cmd.AddCommand(newProductSetCmd(a), newProductDeleteCmd(a))
	return cmd
}

func newProductSetCmd(a *app) *cobra.Command {
	var p domain.Product
	cmd := &cobra.Command{
		Use:   "set <product-id> <name> <price> <stock>",
		Short: "Create or replace a product and drop it from the product cache",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q", args[2])
			}
			stock, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid stock %q", args[3])
			}
			p.ID, p.Name, p.Price, p.Stock = args[0], args[1], price, stock

			repo, err := a.openCatalog()
			if err != nil {
				return err
			}
			if err := repo.UpsertProduct(cmd.Context(), p); err != nil {
				return err
			}
			a.invalidate(cmd.Context(), p.ID)

			saved, err := repo.GetProduct(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Saved %s\n", saved.ID)
			return printProducts(a.out, []domain.Product{saved})
		},
	}
	cmd.Flags().StringVar(&p.Description, "description", "", "product description")
	cmd.Flags().StringVar(&p.ImageURL, "image-url", "", "product image URL")
	return cmd
}

func newProductDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product; carts holding it drop the line on their next read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openCatalog()
			if err != nil {
				return err
			}
			if err := repo.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.invalidate(cmd.Context(), args[0])
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newTokenCmd(a *app) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token for the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			token, err := identity.NewVerifier(a.cfg.JWTSecret, a.cfg.ServiceName, ttl).Issue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

// mutate opens the cart, applies op and prints the resulting cart. On
// failure the cart as it still stands is printed before the error.
func (a *app) mutate(cmd *cobra.Command, op func(*cart.Session) (domain.Snapshot, error)) error {
	s, err := a.openCart(cmd.Context())
	if err != nil {
		return err
	}
	snap, opErr := op(s)
	if err := printCart(a.out, snap); err != nil {
		return err
	}
	return opErr
}

func parseQuantity(arg string) (int, error) {
	q, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", arg)
	}
	return q, nil
}
