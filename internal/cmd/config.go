package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/loan-checklist/internal/credential"
	"github.com/nhle/loan-checklist/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration and stored credentials",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("config file %s already exists", cfgFile)
		}
		if err := model.SaveConfig(cfgFile, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfgFile)
		return nil
	},
}

var configSetSecretCmd = &cobra.Command{
	Use:       "set-secret <smtp-password|storage-secret-key>",
	Short:     "Store a secret in the system keyring, read from stdin",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{credential.KeySMTPPassword, credential.KeyStorageSecretKey},
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if key != credential.KeySMTPPassword && key != credential.KeyStorageSecretKey {
			return fmt.Errorf("unknown secret %q", key)
		}

		value, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && value == "" {
			return fmt.Errorf("reading secret: %w", err)
		}

		secrets, err := credential.Open()
		if err != nil {
			return err
		}
		if err := secrets.Set(key, strings.TrimRight(value, "\r\n")); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configSetSecretCmd)
	rootCmd.AddCommand(configCmd)
}
