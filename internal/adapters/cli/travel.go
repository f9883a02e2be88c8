package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
)

// NewTravelCommand creates the travel command
func NewTravelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "travel <destination-index>",
		Short: "Travel to another body",
		Long: `Travel to the body at the given index of 'spacemining game destinations'.

Fuel cost is ten units per unit of distance between the two bodies.

Example:
  spacemining travel 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid destination index %q", args[0])
			}

			var response gameCommands.TravelResponse
			if err := call(cmd, daemon.MethodTravel, &gameCommands.TravelCommand{DestinationIndex: index}, &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %s\n", response.Message)
				fmt.Fprintf(w, "  Route:     %s → %s\n", response.From, response.To)
				fmt.Fprintf(w, "  Fuel left: %d\n", response.RemainingFuel)
			})
			return nil
		},
	}
}
