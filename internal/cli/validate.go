package cli

import (
	stderrors "errors"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/errors"
)

// validateCommand creates the validate command for checking catalog data.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog and profiles for data problems",
		Long: `Validate loads the catalog and reports dropped entries, duplicate codes,
references to unknown subjects, unknown requirement kinds and prerequisite
cycles. When a profiles file is configured, its subject references are
checked too.

The command fails when any reference points to a subject outside the catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			return ws.validate()
		},
	}
}

func (ws *workspace) validate() error {
	var problems errors.List
	for _, p := range slices.Concat(ws.warnings, ws.diagnostics) {
		problems.Add(p)
	}
	if ws.profiles != nil {
		for _, p := range ws.profiles.Validate(ws.engine.Catalog()) {
			problems.Add(p)
		}
	}

	printSuccess("Catalog loaded: %d subjects", ws.engine.Catalog().Len())
	if len(problems) == 0 {
		printDetail("No problems found")
		return nil
	}

	refs := 0
	for _, p := range problems {
		var ref *curriculum.ReferenceError
		if stderrors.As(p, &ref) {
			refs++
			printError("%s", p)
			continue
		}
		printWarning("%s", p)
	}
	printNewline()
	printKeyValue("Problems", strconv.Itoa(len(problems)))

	if refs > 0 {
		return errors.New(errors.ErrCodeInvalidReference, "%d unknown subject references", refs)
	}
	return nil
}
