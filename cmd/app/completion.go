// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

**Bash**:

$ source <(sitegen completion bash)

To load completions for each session, execute once:
- Linux:
  $ sitegen completion bash > /etc/bash_completion.d/sitegen
- MacOS:
  $ sitegen completion bash > /usr/local/etc/bash_completion.d/sitegen

**Zsh**:

If shell completion is not already enabled in your environment you will need
to enable it.  You can execute the following once:

$ echo "autoload -U compinit; compinit" >> ~/.zshrc

To load completions for each session, execute once:
$ sitegen completion zsh > "${fpath[1]}/_sitegen"

You will need to start a new shell for this setup to take effect.

**Fish**:

$ sitegen completion fish | source

To load completions for each session, execute once:
$ sitegen completion fish > ~/.config/fish/completions/sitegen.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.ExactValidArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletion(out)
			}
			return nil
		},
	}
}
