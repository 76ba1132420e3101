package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/filter"
)

// listOpts holds the command-line flags for the list command.
type listOpts struct {
	profile      string // restrict to a profile's subjects
	emphasis     string // add an emphasis of the profile
	credits      string // credit bucket or exact value
	semester     int    // nominal semester, 0 for all
	dictation    string // 1, 2, both or all
	where        string // CEL expression
	available    bool   // only subjects that can be taken now
	sort         string // sort key
	hideExamOnly bool   // drop exam-only subjects
}

// listCommand creates the list command that prints a filtered subject table.
func (c *CLI) listCommand() *cobra.Command {
	opts := listOpts{dictation: "all", sort: string(filter.SortSemester)}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subjects with their current standing",
		Long: `List prints the catalog as a table with each subject's standing:
blocked, available, approved or exonerated.

Filters combine with AND. --where takes a CEL expression over code, name,
credits, semester, dictation, exam_only, available, approved and exonerated:

  materias list --where 'available && credits >= 10'
  materias list --profile Electrónica --emphasis "Sistemas embebidos"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			subjects, err := ws.list(opts)
			if err != nil {
				return err
			}
			if len(subjects) == 0 {
				printInfo("No subjects match")
				return nil
			}
			fmt.Fprintln(stdout, subjectTable(subjects, ws.standingOf))
			stats := filter.Summarize(subjects)
			printDetail("%d subjects, %d credits", stats.Total, stats.Credits)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "only subjects of this profile")
	cmd.Flags().StringVar(&opts.emphasis, "emphasis", "", "include an emphasis of the selected profile")
	cmd.Flags().StringVar(&opts.credits, "credits", "", "credits: 1-5, 6-10, 11-15, 16+ or an exact number")
	cmd.Flags().IntVarP(&opts.semester, "semester", "s", 0, "nominal semester")
	cmd.Flags().StringVar(&opts.dictation, "dictation", opts.dictation, "dictation semester: 1, 2, both or all")
	cmd.Flags().StringVarP(&opts.where, "where", "w", "", "CEL filter expression")
	cmd.Flags().BoolVarP(&opts.available, "available", "a", false, "only subjects that can be taken now")
	cmd.Flags().StringVar(&opts.sort, "sort", opts.sort, "sort by: semester, name, credits or code")
	cmd.Flags().BoolVar(&opts.hideExamOnly, "hide-exam-only", false, "hide exam-only subjects")

	return cmd
}

// list applies opts to the catalog.
func (ws *workspace) list(opts listOpts) ([]curriculum.Subject, error) {
	var preds []filter.Predicate

	if opts.emphasis != "" && opts.profile == "" {
		return nil, fmt.Errorf("--emphasis requires --profile")
	}
	p, err := ws.profile(opts.profile)
	if err != nil {
		return nil, err
	}
	if p != nil {
		codes := p.Codes()
		if opts.emphasis != "" {
			em, err := p.Emphasis(opts.emphasis)
			if err != nil {
				return nil, err
			}
			codes = lo.Uniq(append(codes, em.Codes()...))
		}
		preds = append(preds, filter.Codes(codes))
	}

	credits, err := filter.Credits(opts.credits)
	if err != nil {
		return nil, err
	}
	dictation, err := filter.Dictation(opts.dictation)
	if err != nil {
		return nil, err
	}
	preds = append(preds, credits, dictation, filter.Semester(opts.semester))

	if opts.hideExamOnly {
		preds = append(preds, filter.HideExamOnly())
	}
	if opts.available {
		preds = append(preds, func(s curriculum.Subject) bool {
			return ws.standingOf(s.Code) == standingAvailable
		})
	}
	if opts.where != "" {
		expr, err := filter.Compile(opts.where)
		if err != nil {
			return nil, err
		}
		preds = append(preds, expr.Predicate(ws.facts))
	}

	subjects := filter.Apply(ws.engine.Catalog().Subjects(), preds...)
	if err := filter.Sort(subjects, filter.SortKey(opts.sort)); err != nil {
		return nil, err
	}
	return subjects, nil
}
