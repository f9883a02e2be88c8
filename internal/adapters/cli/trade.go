package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
)

// NewTradeCommand creates the trade command with subcommands
func NewTradeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Sell cargo at the local outpost",
		Long: `Price and sell the active ship's cargo at the outpost of the current location.

Examples:
  spacemining trade quote
  spacemining trade sell Iron --quantity 10
  spacemining trade sell-all`,
	}

	cmd.AddCommand(newTradeQuoteCommand())
	cmd.AddCommand(newTradeSellCommand())
	cmd.AddCommand(newTradeSellAllCommand())

	return cmd
}

func newTradeQuoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Price the hold without selling",
		RunE: func(cmd *cobra.Command, args []string) error {
			var response gameQueries.GetTradeQuoteResponse
			if err := call(cmd, daemon.MethodGetTradeQuote, &gameQueries.GetTradeQuoteQuery{}, &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				quote := response.Quote
				if quote == nil {
					return
				}
				fmt.Fprintf(w, "%s (%s) at %s\n", quote.Name, quote.OutpostType, quote.LocationName)
				fmt.Fprintln(w, rule)
				if len(quote.CargoPrices) == 0 {
					fmt.Fprintln(w, "No cargo to price")
					return
				}
				t := newTable(w)
				fmt.Fprintln(t, "Resource\tAmount\tPrice\tValue")
				for _, line := range quote.CargoPrices {
					fmt.Fprintf(t, "%s\t%d\t%s\t%s\n", line.Resource, line.Amount, formatCredits(line.Price), formatCredits(line.Value))
				}
				fmt.Fprintf(t, "TOTAL\t\t\t%s\n", formatCredits(quote.TotalValue))
				t.Flush()
			})
			return nil
		},
	}
}

func newTradeSellCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "sell <resource>",
		Short: "Sell one resource",
		Long: `Sell units of one resource. Without --quantity every unit held is sold.
Asking for more than is held sells what is held.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSell(cmd, &gameCommands.SellCargoCommand{ResourceType: args[0], Quantity: quantity})
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 0, "Units to sell (0 sells everything held)")

	return cmd
}

func newTradeSellAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sell-all",
		Short: "Sell the entire hold",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSell(cmd, &gameCommands.SellCargoCommand{SellAll: true})
		},
	}
}

func runSell(cmd *cobra.Command, request *gameCommands.SellCargoCommand) error {
	var response gameCommands.SellCargoResponse
	if err := call(cmd, daemon.MethodSell, request, &response); err != nil {
		return err
	}

	render(cmd, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s\n", response.Message)
		if len(response.Items) > 0 {
			fmt.Fprintf(w, "  Sold:      %s\n", strings.Join(response.Items, ", "))
		}
		fmt.Fprintf(w, "  Earned:    %s\n", formatAmount(response.Earnings))
		fmt.Fprintf(w, "  Credits:   %s\n", formatCredits(response.Credits))
		if response.Partial {
			fmt.Fprintln(w, "  (partial: sold only what was held)")
		}
	})
	return nil
}
