package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/reposnap/internal/github"
	"github.com/dshills/reposnap/internal/repolist"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Manage saved repository URLs",
}

var reposListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved repository URLs",
	Run: func(cmd *cobra.Command, args []string) {
		repos := repolist.New(reposPath()).Load()
		if len(repos) == 0 {
			fmt.Fprintln(os.Stdout, "No saved repositories.")
			return
		}
		for _, r := range repos {
			fmt.Fprintln(os.Stdout, r)
		}
	},
}

var reposAddCmd = &cobra.Command{
	Use:   "add <repository-url>",
	Short: "Save a repository URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := github.ParseRepoURL(args[0]); err != nil {
			return fail(ExitUsageError, err)
		}
		if err := repolist.New(reposPath()).Add(args[0]); err != nil {
			return fail(ExitRuntimeError, err)
		}
		return nil
	},
}

var reposRemoveCmd = &cobra.Command{
	Use:   "remove <repository-url>",
	Short: "Remove a saved repository URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repolist.New(reposPath()).Remove(args[0]); err != nil {
			return fail(ExitRuntimeError, err)
		}
		return nil
	},
}

func init() {
	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(reposAddCmd)
	reposCmd.AddCommand(reposRemoveCmd)
}
