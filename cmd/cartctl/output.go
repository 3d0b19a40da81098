package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/domain"
)

func printNotice(w io.Writer, n cart.Notice) {
	prefix := "*"
	if n.Variant == cart.VariantDestructive {
		prefix = "!"
	}
	fmt.Fprintf(w, "%s %s: %s\n", prefix, n.Title, n.Description)
}

func printCart(w io.Writer, snap domain.Snapshot) error {
	if snap.IsEmpty() {
		_, err := fmt.Fprintf(w, "Cart is empty (%s)\n", snap.Mode())
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tPRODUCT\tNAME\tQTY\tUNIT\tSUBTOTAL")
	for _, it := range snap.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			it.ID, it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.UnitPrice*float64(it.Quantity))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %d items, $%.2f (%s)\n", snap.TotalItems(), snap.TotalPrice(), snap.Mode())
	return err
}

func printProducts(w io.Writer, products []domain.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%d\n", p.ID, p.Name, p.Price, p.Stock)
	}
	return tw.Flush()
}
