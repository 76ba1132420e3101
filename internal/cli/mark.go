package cli

import (
	"github.com/spf13/cobra"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/progress"
)

// markCommand creates the mark command that records progress for a subject.
func (c *CLI) markCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mark <code> <approved|exonerated|unset>",
		Short: "Record the progress of a subject",
		Long: `Mark records whether a subject's course was approved, the subject was
exonerated, or clears what was recorded. Spanish spellings (aprobada,
exonerada) are accepted. Subjects that become available as a result are
listed.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeMark,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			return ws.mark(cmd, args[0], args[1])
		},
	}
}

func (ws *workspace) mark(cmd *cobra.Command, code, status string) error {
	if err := ws.requireSubject(code); err != nil {
		return err
	}
	st, err := progress.ParseStatus(status)
	if err != nil {
		return err
	}

	var unlocked []curriculum.Subject
	if st != progress.StatusUnset {
		unlocked = ws.engine.UnlockedSubjects(code, st == progress.StatusExonerated)
	}
	ws.engine.State().SetStatus(code, st)
	if err := ws.save(cmd.Context()); err != nil {
		return err
	}

	printSuccess("%s is now %s", code, ws.standingOf(code).render())
	printFile(ws.store.Path())
	for _, s := range unlocked {
		printDetail("now available: %s  %s", s.Code, s.Name)
	}
	return nil
}
