package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
)

// NewMineCommand creates the mine command
func NewMineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mine <resource>",
		Short: "Mine a resource at the current location",
		Long: `Mine a resource into the active ship's hold.

The resource may be given by name ("Rare Earth") or symbol (RARE_EARTH).
Units that do not fit in the hold are returned to the deposit.

Examples:
  spacemining mine Iron
  spacemining mine RARE_EARTH`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var response gameCommands.MineResourceResponse
			request := &gameCommands.MineResourceCommand{ResourceType: args[0]}
			if err := call(cmd, daemon.MethodMine, request, &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %s\n", response.Message)
				fmt.Fprintf(w, "  Mined:     %d\n", response.Mined)
				fmt.Fprintf(w, "  Loaded:    %d\n", response.Loaded)
				if response.Refunded > 0 {
					fmt.Fprintf(w, "  Returned:  %d\n", response.Refunded)
				}
				fmt.Fprintf(w, "  Remaining: %d\n", response.Remaining)
			})
			return nil
		},
	}
}
