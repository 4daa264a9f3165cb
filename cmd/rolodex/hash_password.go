package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/rolodex/internal/config"
	"github.com/spf13/cobra"
)

var hashCost int

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for DEV_GATE_PASSWORD_HASH",
	Long:  "Hash the dev gate password. Reads the password from stdin when no argument is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHashPassword,
}

func init() {
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", 12, "bcrypt cost (10-14)")
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	if hashCost < 10 || hashCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", hashCost)
	}

	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		var err error
		if password, err = readPassword(cmd.InOrStdin()); err != nil {
			return err
		}
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	gate := config.DevGateConfig{BcryptCost: hashCost}
	hash, err := gate.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

// readPassword returns the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
