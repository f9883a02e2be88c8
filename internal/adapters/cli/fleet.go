package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
)

// NewFleetCommand creates the fleet command with subcommands
func NewFleetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "List owned ships and pick the active one",
		Long: `List every owned ship and switch the active ship.

Mining, travel, trading and upgrades always act on the active ship.

Examples:
  spacemining fleet list
  spacemining fleet switch 1`,
	}

	cmd.AddCommand(newFleetListCommand())
	cmd.AddCommand(newFleetSwitchCommand())

	return cmd
}

func newFleetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List owned ships",
		RunE: func(cmd *cobra.Command, args []string) error {
			var response gameQueries.GetFleetResponse
			if err := call(cmd, daemon.MethodGetFleet, &gameQueries.GetFleetQuery{}, &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				t := newTable(w)
				fmt.Fprintln(t, "#\tName\tActive\tCargo\tFuel\tEfficiency\tSpeed")
				for _, ship := range response.Ships {
					active := ""
					if ship.Active {
						active = "*"
					}
					fmt.Fprintf(t, "%d\t%s\t%s\t%d/%d\t%d/%d\t%.2f\t%.1f\n",
						ship.Index, ship.Name, active,
						ship.CargoUsed, ship.CargoCapacity,
						ship.CurrentFuel, ship.FuelCapacity,
						ship.MiningEfficiency, ship.Speed)
				}
				t.Flush()
			})
			return nil
		},
	}
}

func newFleetSwitchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <ship-index>",
		Short: "Make another owned ship active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ship index %q", args[0])
			}

			var response gameCommands.SwitchShipResponse
			if err := call(cmd, daemon.MethodSwitchShip, &gameCommands.SwitchShipCommand{ShipIndex: index}, &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %s\n", response.Message)
			})
			return nil
		},
	}
}
