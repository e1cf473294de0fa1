package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	fio "github.com/matzehuels/familytower/pkg/io"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for familytower.

To load completions:

Bash:
  $ source <(familytower completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ familytower completion bash > /etc/bash_completion.d/familytower
  # macOS:
  $ familytower completion bash > $(brew --prefix)/etc/bash_completion.d/familytower

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ familytower completion zsh > "${fpath[1]}/_familytower"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ familytower completion fish | source

  # To load completions for each session, execute once:
  $ familytower completion fish > ~/.config/fish/completions/familytower.fish

PowerShell:
  PS> familytower completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> familytower completion powershell > familytower.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completePersonIDs completes person ids from the family file given as
// the first argument, described by their names.
func completePersonIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	f, err := fio.ImportFamily(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, p := range f.People {
		if strings.HasPrefix(p.ID, toComplete) {
			out = append(out, p.ID+"\t"+p.DisplayName())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// registerPersonCompletion attaches completePersonIDs to the named flags.
func registerPersonCompletion(cmd *cobra.Command, flags ...string) {
	for _, name := range flags {
		_ = cmd.RegisterFlagCompletionFunc(name, completePersonIDs)
	}
}
