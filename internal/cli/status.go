package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
)

// statusCommand creates the status command. Without arguments it summarizes
// overall progress; with a subject code it reports on that subject.
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "status [code]",
		Short:             "Show overall progress or the standing of one subject",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeSubjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				ws.printSummary()
				return nil
			}
			return ws.printSubject(args[0])
		},
	}
}

func (ws *workspace) printSummary() {
	sum := ws.engine.Summary()
	printTitle("Progress")
	printKeyValue("Exonerated", strconv.Itoa(sum.Exonerated))
	printKeyValue("Approved", strconv.Itoa(sum.Approved))
	printKeyValue("Available", strconv.Itoa(sum.Available))
	printKeyValue("Blocked", strconv.Itoa(sum.Blocked))
	printKeyValue("Credits", strconv.Itoa(sum.Credits))
	if sum.Exonerated+sum.Approved == 0 {
		printNewline()
		printNextStep("Record a subject", appName+" mark CODE approved")
	}
}

func (ws *workspace) printSubject(code string) error {
	if err := ws.requireSubject(code); err != nil {
		return err
	}
	s, _ := ws.engine.Catalog().Subject(code)

	printTitle("%s  %s", s.Code, s.Name)
	printKeyValue("Status", ws.standingOf(code).render())
	printKeyValue("Credits", strconv.Itoa(s.Credits))
	printKeyValue("Semester", strconv.Itoa(s.Semester))
	printKeyValue("Dictation", string(s.EffectiveDictation()))
	if s.ExamOnly {
		printKeyValue("Exam only", "yes")
	}
	printNewline()
	fmt.Fprintln(stdout, renderMarkup(ws.engine.Explain(code)))

	if missing := ws.engine.MissingPrerequisites(code); len(missing) > 0 {
		printNewline()
		printWarning("Blocked prerequisites behind %s", s.Code)
		for _, m := range missing {
			printDetail("%s  %s", m, ws.displayName(m))
		}
	}
	return nil
}

// displayName falls back to the code for subjects outside the catalog.
func (ws *workspace) displayName(code string) string {
	if name := ws.engine.Catalog().Name(code); name != "" {
		return name
	}
	return code
}

// pathCommand creates the path command that plans the way to a subject.
func (c *CLI) pathCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "path <code>",
		Short:             "Show what to take next on the way to a subject",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeSubjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			return ws.printPath(args[0])
		},
	}
}

func (ws *workspace) printPath(code string) error {
	if err := ws.requireSubject(code); err != nil {
		return err
	}
	res := ws.engine.RecommendedPath(code)

	if res.IsTargetAvailable {
		printSuccess("%s can be taken now", res.Target.Name)
	} else {
		printInfo("Path to %s", res.Target.Name)
	}
	printSubjectGroup("Available now", res.AvailableNow)
	printSubjectGroup("Still blocked", res.PendingPrerequisites)
	return nil
}

func printSubjectGroup(title string, subjects []curriculum.Subject) {
	if len(subjects) == 0 {
		return
	}
	printNewline()
	printTitle("%s", title)
	for _, s := range subjects {
		printDetail("%-8s %s (semester %d)", s.Code, s.Name, s.Semester)
	}
}

// unlocksCommand creates the unlocks command that previews the effect of
// completing a subject.
func (c *CLI) unlocksCommand() *cobra.Command {
	var exonerated bool

	cmd := &cobra.Command{
		Use:               "unlocks <code>",
		Short:             "Show which subjects completing a subject would make available",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeSubjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := ws.requireSubject(args[0]); err != nil {
				return err
			}
			unlocked := ws.engine.UnlockedSubjects(args[0], exonerated)
			how := "approving the course of"
			if exonerated {
				how = "exonerating"
			}
			if len(unlocked) == 0 {
				printInfo("%s %s unlocks nothing new", capitalize(how), args[0])
				return nil
			}
			printSuccess("%s %s unlocks %d subjects", capitalize(how), args[0], len(unlocked))
			for _, s := range unlocked {
				printDetail("%-8s %s", s.Code, s.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&exonerated, "exonerated", "e", false, "simulate exoneration instead of course approval")
	return cmd
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
