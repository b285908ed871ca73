package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe-history/internal/session"
	"ctchen222/tictactoe-history/pkg/proto"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func Play(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [commands...]",
		Short: "Apply a script of moves, jumps and resets to a new game",
		Example: heredoc.Doc(`
			# X wins down the first column
			$ tictactoe play 0 1 3 4 6

			# go back to the start and replay from there
			$ tictactoe play 0 4 jump:0 1,1 --each

			# show every recorded board and the events the game produced
			$ tictactoe play 4 0 8 --history --events
		`),
		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := ParseScript(args)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			each, _ := cmd.Flags().GetBool("each")
			showHistory, _ := cmd.Flags().GetBool("history")
			showEvents, _ := cmd.Flags().GetBool("events")
			out := cmd.OutOrStdout()

			manager := session.NewManager(a.publisher())
			s := manager.Create(cmd.Context())
			defer func() {
				if err := manager.Remove(cmd.Context(), s.ID); err != nil {
					slog.WarnContext(cmd.Context(), "failed to close session", "session.id", s.ID, "error", err)
					return
				}
				slog.DebugContext(cmd.Context(), "play finished", "session.id", s.ID, "open", manager.Len())
			}()

			for i, c := range cmds {
				state, err := s.Handle(cmd.Context(), c)
				if err != nil {
					return fmt.Errorf("command %d (%s): %w", i+1, args[i], err)
				}
				if each {
					fmt.Fprintf(out, "== %s (applied: %t)\n", args[i], state.Applied)
					if err := write(cmd, state, asJSON); err != nil {
						return err
					}
				}
			}

			if !each {
				if err := write(cmd, s.State(), asJSON); err != nil {
					return err
				}
			}
			if showHistory {
				if err := RenderHistory(out, s.Snapshots()); err != nil {
					return err
				}
			}
			if showEvents {
				return RenderEvents(out, a.recorder.Events())
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the state as JSON")
	cmd.Flags().Bool("each", false, "Print the state after every command")
	cmd.Flags().Bool("history", false, "Print every recorded board")
	cmd.Flags().Bool("events", false, "Print the events the game produced")

	return cmd
}

func write(cmd *cobra.Command, state *proto.StateMessage, asJSON bool) error {
	if !asJSON {
		return Render(cmd.OutOrStdout(), state)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
