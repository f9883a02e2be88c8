package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
)

// NewShopCommand creates the shop command with subcommands
func NewShopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Buy ship upgrades and new ships",
		Long: `Browse the catalog and buy upgrades for the active ship or new ships.

Upgrades apply to the active ship. New ships join the fleet; switch to them
with 'spacemining fleet switch'.

Examples:
  spacemining shop list
  spacemining shop buy-upgrade 0
  spacemining shop buy-ship 1`,
	}

	cmd.AddCommand(newShopListCommand())
	cmd.AddCommand(newShopBuyCommand("buy-upgrade", "Buy an upgrade for the active ship", daemon.MethodBuyUpgrade,
		func(index int) interface{} { return &gameCommands.PurchaseUpgradeCommand{ItemIndex: index} }))
	cmd.AddCommand(newShopBuyCommand("buy-ship", "Buy a new ship", daemon.MethodBuyShip,
		func(index int) interface{} { return &gameCommands.PurchaseShipCommand{ItemIndex: index} }))

	return cmd
}

func newShopListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upgrades and ships for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			var response gameQueries.GetShopResponse
			if err := call(cmd, daemon.MethodGetShop, &gameQueries.GetShopQuery{}, &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				shop := response.Shop
				if shop == nil {
					return
				}
				fmt.Fprintf(w, "SHOP (credits: %s, active ship: %s)\n", formatCredits(shop.Credits), shop.CurrentShip)
				fmt.Fprintln(w, rule)

				fmt.Fprintln(w, "\nUPGRADES")
				printShopItems(w, shop.Upgrades)

				fmt.Fprintln(w, "\nSHIPS")
				printShopItems(w, shop.Ships)

				fmt.Fprintf(w, "\nYour fleet: %s\n", strings.Join(shop.PlayerShips, ", "))
			})
			return nil
		},
	}
}

func newShopBuyCommand(use, short, method string, build func(index int) interface{}) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <index>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item index %q", args[0])
			}

			var response gameCommands.PurchaseResponse
			if err := call(cmd, method, build(index), &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %s\n", response.Message)
				if response.NewShipIndex != nil {
					fmt.Fprintf(w, "  New ship at fleet index %d\n", *response.NewShipIndex)
				}
			})
			return nil
		},
	}
}

func printShopItems(w io.Writer, items []gameApp.ShopItemDTO) {
	t := newTable(w)
	fmt.Fprintln(t, "#\tName\tCost\tAffordable\tStats")
	for _, item := range items {
		fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%s\n", item.Index, item.Name, formatCredits(item.Cost), yesNo(item.Affordable), formatStats(item.Stats))
	}
	t.Flush()
}

func formatStats(stats map[string]float64) string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%g", name, stats[name]))
	}
	return strings.Join(parts, " ")
}
