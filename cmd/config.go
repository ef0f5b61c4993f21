package cmd

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/user/caption-timeline-cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create and inspect the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented sample config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, err := configFilePath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		if err := config.CreateSample(path); err != nil {
			return err
		}
		fmt.Printf("Wrote sample config to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, the config file and environment overrides are applied. The API token is masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		if shown.API.Token != "" {
			shown.API.Token = "********"
		}
		out, err := toml.Marshal(shown)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		path, err := configFilePath()
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n%s", path, out)
		return nil
	},
}

func configFilePath() (string, error) {
	if configPath != "" {
		return config.ExpandPath(configPath)
	}
	return config.DefaultConfigPath()
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
