package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

// verifyCmd holds the flags for the 'verify' subcommand.
type verifyCmd struct {
	repair bool
}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "check every snapshot against a replay of its logs" }
func (*verifyCmd) Usage() string {
	return `fms verify [-repair]

  Replays every user's month logs and compares the result with the stored
  snapshot. A divergence means a commit was interrupted; -repair rewrites
  the snapshot from the replay.
`
}

func (c *verifyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.repair, "repair", false, "Rewrite diverged snapshots from their logs.")
}

func (c *verifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	books, err := openBooks()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening data directory %q: %v\n", dataPath(), err)
		return subcommands.ExitFailure
	}
	store := books.Store()

	users, err := store.Users()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing users: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(users) == 0 {
		fmt.Println("Nothing to verify.")
		return subcommands.ExitSuccess
	}

	// Users own disjoint files, so they verify in parallel.
	var g errgroup.Group
	for _, user := range users {
		g.Go(func() error {
			if err := store.Verify(user); err == nil {
				fmt.Printf("%s: ok\n", user)
				return nil
			} else if !c.repair {
				return err
			}
			snap, err := store.Repair(user)
			if err != nil {
				return err
			}
			fmt.Printf("%s: repaired, balance %s\n", user, snap.Balance.Display())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
