// Package cmd implements the CLI application to manage personal finance records.
package cmd

import (
	"flag"
	"os"

	"github.com/google/subcommands"
	finance "github.com/harsh-kanjar/Finance-management-system-backend"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "ledger")
	c.Register(&balanceCmd{}, "ledger")
	c.Register(&historyCmd{}, "ledger")

	c.Register(&addFundCmd{}, "funds")
	c.Register(&fundsCmd{}, "funds")
	c.Register(&sipCmd{}, "funds")
	c.Register(&correctNavCmd{}, "funds")

	c.Register(&verifyCmd{}, "maintenance")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", "", "Path to the data directory. Defaults to $FMS_DATA_DIR, then .fms.")
var userFlag = flag.String("user", "", "User whose ledger the command operates on. Defaults to $FMS_USER, then main.")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// dataPath resolves the data directory. The environment is read here rather
// than in the flag default so a .env file loaded by main is taken into account.
func dataPath() string {
	if *dataDir != "" {
		return *dataDir
	}
	return envOr("FMS_DATA_DIR", ".fms")
}

// currentUser resolves the user the command operates on.
func currentUser() string {
	if *userFlag != "" {
		return *userFlag
	}
	return envOr("FMS_USER", "main")
}

// openBooks opens the engine over the app data directory.
func openBooks() (*finance.Books, error) {
	return finance.Open(dataPath())
}
