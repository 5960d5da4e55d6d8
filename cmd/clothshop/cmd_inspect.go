package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/routes"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/database"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/router"
)

// clothshop route:list — print all registered API routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		routes.RegisterAPI(r, nil)

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

// clothshop stock:low — list items at or below their reorder threshold.
var stockLowCmd = &cobra.Command{
	Use:   "stock:low",
	Short: "List items at or below their low-stock threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		items, err := repositories.NewCatalogRepository(database.DB).LowStock()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No items below threshold.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SKU\tNAME\tQTY\tTHRESHOLD")
		for _, it := range items {
			qty, threshold := 0, 0
			if it.Stock != nil {
				qty = it.Stock.Quantity
				threshold = it.Stock.LowStockThreshold
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", it.SKU, it.Name, qty, threshold)
		}
		return w.Flush()
	},
}
