// Package cartctl is a command line shopper. It drives the same cart and
// wishlist stores as the HTTP server against the local store, so state
// carries over between runs.
package cartctl

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"storefront/internal/brand"
	"storefront/internal/checkout"
	"storefront/internal/domain"
	"storefront/internal/localstore"
	"storefront/internal/service/catalog"
	"storefront/internal/store/cart"
	"storefront/internal/store/wishlist"

	"github.com/spf13/cobra"
)

// Catalog is what the CLI needs from catalog data access.
type Catalog interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type App struct {
	Storage        localstore.Storage
	Catalog        Catalog
	Brand          brand.Brand
	WhatsAppNumber string

	session string
}

// stores opens the cart and wishlist for the selected session. Without a
// session the plain storage keys are used.
func (a *App) stores(ctx context.Context) (*cart.Store, *wishlist.Store, error) {
	cartKey, wishKey := cart.DefaultKey, wishlist.DefaultKey
	if a.session != "" {
		cartKey += ":" + a.session
		wishKey += ":" + a.session
	}
	c := cart.New(a.Storage, cartKey)
	if err := c.Hydrate(ctx); err != nil {
		return nil, nil, err
	}
	w := wishlist.New(a.Storage, wishKey)
	if err := w.Hydrate(ctx); err != nil {
		return nil, nil, err
	}
	return c, w, nil
}

func NewRootCommand(app *App) *cobra.Command {
	if app.Brand.Key == "" {
		app.Brand = brand.Mashafy
	}
	root := &cobra.Command{
		Use:           "cartctl",
		Short:         "Manage a storefront cart and wishlist from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.session, "session", "", "Session id whose cart and wishlist to use")

	root.AddCommand(
		productsCmd(app),
		addCmd(app),
		removeCmd(app),
		setQtyCmd(app),
		clearCmd(app),
		showCmd(app),
		wishCmd(app),
		checkoutCmd(app),
	)
	return root
}

func productsCmd(app *App) *cobra.Command {
	var opts catalog.FilterOptions
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := app.Catalog.GetProducts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range catalog.Filter(products, opts) {
				fmt.Fprintf(out, "%-6s %-32s %s%s  stock=%d (%s)\n", p.ID, p.Name, app.Brand.CurrencySymbol, checkout.FormatAmount(p.Price), p.Stock, catalog.StockLevel(p.Stock))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Category, "category", "", "Only show this category")
	cmd.Flags().StringVar(&opts.Sort, "sort", catalog.SortNewest, "newest, price-low or price-high")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Filter by name")
	return cmd
}

func addCmd(app *App) *cobra.Command {
	var (
		qty         int
		size, color string
	)
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if qty < 1 {
				return fmt.Errorf("quantity must be at least 1")
			}
			p, err := app.Catalog.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("product %s: %w", args[0], err)
			}
			c, _, err := app.stores(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.AddItem(cmd.Context(), *p, qty, size, color); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s\n", qty, p.Name)
			return nil
		},
	}
	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "Quantity to add")
	cmd.Flags().StringVar(&size, "size", "", "Size variant")
	cmd.Flags().StringVar(&color, "color", "", "Color variant")
	return cmd
}

func removeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := app.stores(cmd.Context())
			if err != nil {
				return err
			}
			return c.RemoveItem(cmd.Context(), args[0])
		},
	}
}

func setQtyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-qty <product-id> <quantity>",
		Short: "Set a line's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q: %w", args[1], err)
			}
			if qty < 1 {
				return fmt.Errorf("quantity must be at least 1, use remove to drop a line")
			}
			c, _, err := app.stores(cmd.Context())
			if err != nil {
				return err
			}
			if _, ok := c.Line(args[0]); !ok {
				return fmt.Errorf("product %s is not in the cart", args[0])
			}
			return c.UpdateQuantity(cmd.Context(), args[0], qty)
		},
	}
}

func clearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := app.stores(cmd.Context())
			if err != nil {
				return err
			}
			return c.ClearCart(cmd.Context())
		},
	}
}

func showCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := app.stores(cmd.Context())
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c, app.Brand)
			return nil
		},
	}
}

func printCart(out io.Writer, c *cart.Store, b brand.Brand) {
	lines := c.Items()
	if len(lines) == 0 {
		fmt.Fprintln(out, "Cart is empty")
		return
	}
	for _, l := range lines {
		variant := ""
		if l.SelectedSize != "" {
			variant += " size=" + l.SelectedSize
		}
		if l.SelectedColor != "" {
			variant += " color=" + l.SelectedColor
		}
		fmt.Fprintf(out, "%-6s %-32s x%d  %s%s%s\n", l.ID, l.Name, l.Quantity, b.CurrencySymbol, checkout.FormatAmount(l.LineTotal()), variant)
	}
	fmt.Fprintf(out, "Items: %d  Total: %s%s\n", c.TotalItems(), b.CurrencySymbol, checkout.FormatAmount(c.TotalPrice()))
}

func wishCmd(app *App) *cobra.Command {
	wish := &cobra.Command{
		Use:   "wish",
		Short: "Manage the wishlist",
	}
	wish.AddCommand(
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "Add a product to the wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := app.Catalog.GetProduct(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("product %s: %w", args[0], err)
				}
				_, w, err := app.stores(cmd.Context())
				if err != nil {
					return err
				}
				return w.AddItem(cmd.Context(), *p)
			},
		},
		&cobra.Command{
			Use:   "remove <product-id>",
			Short: "Remove a product from the wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, w, err := app.stores(cmd.Context())
				if err != nil {
					return err
				}
				return w.RemoveItem(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print the wishlist",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, w, err := app.stores(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				items := w.Items()
				if len(items) == 0 {
					fmt.Fprintln(out, "Wishlist is empty")
					return nil
				}
				for _, e := range items {
					fmt.Fprintf(out, "%-6s %s\n", e.ID, e.Name)
				}
				return nil
			},
		},
	)
	return wish
}

func checkoutCmd(app *App) *cobra.Command {
	var info checkout.CustomerInfo
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Print the WhatsApp order link for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := app.stores(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printer := checkout.OpenerFunc(func(_ context.Context, link string) error {
				_, err := fmt.Fprintln(out, link)
				return err
			})
			_, err = checkout.Open(cmd.Context(), printer, app.Brand, app.WhatsAppNumber, c.Items(), c.TotalPrice(), &info)
			return err
		},
	}
	cmd.Flags().StringVar(&info.Name, "name", "", "Customer name")
	cmd.Flags().StringVar(&info.Phone, "phone", "", "Customer phone")
	cmd.Flags().StringVar(&info.Email, "email", "", "Customer email")
	cmd.Flags().StringVar(&info.Address, "address", "", "Delivery address")
	cmd.Flags().StringVar(&info.Notes, "notes", "", "Order notes")
	return cmd
}
