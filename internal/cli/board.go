package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// boardCommand creates the board command, an interactive view for updating
// progress.
func (c *CLI) boardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Browse subjects and update progress interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context())
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewBoardModel(ws), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("board: %w", err)
			}
			if m, ok := final.(BoardModel); ok && m.Dirty {
				if err := ws.save(cmd.Context()); err != nil {
					return err
				}
				printSuccess("Progress saved")
				printFile(ws.store.Path())
			}
			return nil
		},
	}
}
