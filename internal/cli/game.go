package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game session commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameSubmitCmd())
	cmd.AddCommand(newGameQuitCmd())
	cmd.AddCommand(newGameImageCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var lat, lng, radius float64
	var timeLimit int
	var gameType string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new game session around a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"start_pos":    Point{Latitude: lat, Longitude: lng},
				"radius_limit": radius,
				"time_limit":   timeLimit,
				"game_type":    gameType,
			}
			var result GameCreated

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Start latitude (required)")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Start longitude (required)")
	cmd.Flags().Float64Var(&radius, "radius", 5000, "Search radius in meters")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 10, "Time limit in minutes (timed games)")
	cmd.Flags().StringVar(&gameType, "type", "timed", "Game type: timed, completion")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your game sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSubmitCmd() *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "submit <game_id>",
		Short: "Submit your guess for a game session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			req := map[string]any{
				"end_pos": Point{Latitude: lat, Longitude: lng},
			}
			var result SubmitResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/submit", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Guessed latitude (required)")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Guessed longitude (required)")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")

	return cmd
}

func newGameQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit <game_id>",
		Short: "Quit a game session within the grace period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/quit", gameID), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game quit")
			return nil
		},
	}
}

func newGameImageCmd() *cobra.Command {
	var heading float64
	var outFile string

	cmd := &cobra.Command{
		Use:   "image <game_id>",
		Short: "Download imagery for a game's hidden location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() { _ = f.Close() }()

			path := fmt.Sprintf("/api/v1/games/%s/image?heading=%g", gameID, heading)
			if err := client.Download(path, f); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Image saved to %s", outFile))
			return nil
		},
	}

	cmd.Flags().Float64Var(&heading, "heading", 0, "Camera heading in degrees")
	cmd.Flags().StringVar(&outFile, "out", "image.jpg", "Output file path")

	return cmd
}
