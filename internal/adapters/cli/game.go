package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	gameApp "github.com/andrescamacho/spacemining-go/internal/application/game"
	gameCommands "github.com/andrescamacho/spacemining-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/spacemining-go/internal/application/game/queries"
)

// NewGameCommand creates the game command with subcommands
func NewGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Start games and inspect the current one",
		Long: `Start a new game and inspect the player, location and travel options.

Examples:
  spacemining game new --player Ripley --credits 2500
  spacemining game status
  spacemining game location
  spacemining game destinations
  spacemining game end-turn`,
	}

	cmd.AddCommand(newGameNewCommand())
	cmd.AddCommand(newGameStatusCommand())
	cmd.AddCommand(newGameLocationCommand())
	cmd.AddCommand(newGameDestinationsCommand())
	cmd.AddCommand(newGameEndTurnCommand())

	return cmd
}

func newGameNewCommand() *cobra.Command {
	var (
		playerName string
		credits    float64
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Long: `Generate a fresh star system and replace the current game.

The player name defaults to the one saved with 'spacemining config set-player'.
Without --seed the daemon's configured seed is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &gameCommands.InitGameCommand{PlayerName: playerName}
			if request.PlayerName == "" {
				if prefs, err := loadUserConfig(); err == nil {
					request.PlayerName = prefs.PlayerName
				}
			}
			if cmd.Flags().Changed("credits") {
				request.StartingCredits = &credits
			}
			if cmd.Flags().Changed("seed") {
				request.Seed = &seed
			}

			var response gameCommands.InitGameResponse
			if err := call(cmd, daemon.MethodInitGame, request, &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %s\n", response.Message)
				if response.Status != nil {
					fmt.Fprintln(w)
					printStatus(w, response.Status)
				}
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&playerName, "player", "", "Player name")
	cmd.Flags().Float64Var(&credits, "credits", 1000, "Starting credits")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "World generation and mining seed")

	return cmd
}

func newGameStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show player, location and active ship",
		RunE: func(cmd *cobra.Command, args []string) error {
			var response gameQueries.GetStatusResponse
			if err := call(cmd, daemon.MethodGetStatus, &gameQueries.GetStatusQuery{}, &response); err != nil {
				return err
			}
			render(cmd, func(w io.Writer) {
				printStatus(w, response.Status)
			})
			return nil
		},
	}
}

func newGameLocationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "location",
		Short: "Describe the current location",
		RunE: func(cmd *cobra.Command, args []string) error {
			var response gameQueries.GetLocationResponse
			if err := call(cmd, daemon.MethodGetLocation, &gameQueries.GetLocationQuery{}, &response); err != nil {
				return err
			}
			render(cmd, func(w io.Writer) {
				printLocation(w, response.Location)
			})
			return nil
		},
	}
}

func newGameDestinationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "destinations",
		Short: "List travel destinations with fuel costs",
		RunE: func(cmd *cobra.Command, args []string) error {
			var response gameQueries.ListDestinationsResponse
			if err := call(cmd, daemon.MethodListDestinations, &gameQueries.ListDestinationsQuery{}, &response); err != nil {
				return err
			}
			render(cmd, func(w io.Writer) {
				printDestinations(w, response.Destinations)
			})
			return nil
		},
	}
}

func newGameEndTurnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "end-turn",
		Short: "End the current turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			var response gameCommands.EndTurnResponse
			if err := call(cmd, daemon.MethodEndTurn, &gameCommands.EndTurnCommand{}, &response); err != nil {
				return err
			}
			render(cmd, func(w io.Writer) {
				fmt.Fprintf(w, "✓ %s\n", response.Message)
			})
			return nil
		},
	}
}

func printStatus(w io.Writer, status *gameApp.StatusDTO) {
	if status == nil {
		return
	}
	fmt.Fprintf(w, "COMMANDER %s (turn %d)\n", status.PlayerName, status.Turn)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Credits:      %s\n", formatCredits(status.Credits))
	fmt.Fprintf(w, "  Location:     %s [%d]\n", status.Location, status.LocationIndex)
	fmt.Fprintf(w, "  Ship:         %s (%d of %d in fleet)\n", status.ShipName, status.ActiveShipIndex+1, status.FleetSize)
	fmt.Fprintf(w, "  Cargo:        %d/%d  %s\n", status.CargoUsed, status.CargoCapacity, formatCargo(status.Cargo))
	fmt.Fprintf(w, "  Fuel:         %d/%d\n", status.CurrentFuel, status.FuelCapacity)
	fmt.Fprintf(w, "  Efficiency:   %.2f\n", status.MiningEfficiency)
}

func printLocation(w io.Writer, location *gameApp.LocationDTO) {
	if location == nil {
		return
	}
	fmt.Fprintf(w, "%s (%s, %.1f AU)\n", location.Name, location.BodyType, location.Distance)
	fmt.Fprintln(w, rule)
	if location.HasOutpost {
		fmt.Fprintf(w, "  Outpost:      %s (%s)\n", location.OutpostName, location.OutpostType)
	}
	fmt.Fprintf(w, "  Ship shop:    %s\n", yesNo(location.HasShipShop))
	if len(location.Resources) == 0 {
		fmt.Fprintln(w, "  Resources:    none")
		return
	}
	fmt.Fprintf(w, "  Difficulty:   %.1f\n", location.MiningDifficulty)
	fmt.Fprintf(w, "  Resources:    %s\n", formatCargo(location.Resources))
}

func printDestinations(w io.Writer, destinations []gameApp.DestinationDTO) {
	if len(destinations) == 0 {
		fmt.Fprintln(w, "No destinations")
		return
	}

	t := newTable(w)
	fmt.Fprintln(t, "#\tName\tType\tDistance\tFuel\tReachable\tOutpost\tResources")
	for _, d := range destinations {
		outpost := "-"
		if d.HasOutpost {
			outpost = d.OutpostName
		}
		fmt.Fprintf(t, "%d\t%s\t%s\t%.1f\t%d\t%s\t%s\t%s\n",
			d.Index, d.Name, d.BodyType, d.Distance, d.FuelCost, yesNo(d.CanTravel), outpost, yesNo(d.HasResources))
	}
	t.Flush()
}
