package freesscan

import "github.com/spf13/cobra"

func init() {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			default:
				return usagef("unsupported shell: %s", args[0])
			}
		},
		Example: `
# Bash
freesscan completion bash > /etc/bash_completion.d/freesscan

# Zsh
freesscan completion zsh > "${fpath[1]}/_freesscan"

# Fish
freesscan completion fish > ~/.config/fish/completions/freesscan.fish
`,
	}
	rootCmd.AddCommand(cmd)
}
