package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for materias.

Subject codes complete from the configured catalog.

Bash:
  $ source <(materias completion bash)

Zsh:
  $ materias completion zsh > "${fpath[1]}/_materias"

Fish:
  $ materias completion fish > ~/.config/fish/completions/materias.fish

PowerShell:
  PS> materias completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeSubjects completes a single subject code from the catalog.
func (c *CLI) completeSubjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return c.subjectCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeMark completes a code and then a status for the mark command.
func (c *CLI) completeMark(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return c.subjectCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return []string{"approved", "exonerated", "unset"}, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// subjectCompletions lists "CODE\tName" entries with the given prefix.
func (c *CLI) subjectCompletions(cmd *cobra.Command, prefix string) []string {
	ws, err := c.open(cmd.Context())
	if err != nil {
		return nil
	}
	var out []string
	for _, s := range ws.engine.Catalog().Subjects() {
		if strings.HasPrefix(strings.ToUpper(s.Code), strings.ToUpper(prefix)) {
			out = append(out, s.Code+"\t"+s.Name)
		}
	}
	return out
}
