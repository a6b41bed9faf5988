package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/concourse-client/internal/constants"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a Concourse team",
		Long:  "Store the API URL, team and bearer token used by the other commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := viper.GetString("token")
			if token == "" {
				prompted, err := promptToken(cmd)
				if err != nil {
					return err
				}

				token = prompted
			}

			if token == "" {
				return constants.ErrNoTokenProvided
			}

			viper.Set("token", token)

			teamFlag, _ := cmd.Flags().GetString("team")

			clientConfig, err := buildClientConfig(viper.GetViper(), teamFlag)
			if err != nil {
				return err
			}

			if !skipVerify {
				client, err := createClient(cmd)
				if err != nil {
					return err
				}

				defer func() { _ = client.Close() }()

				pipelines, err := client.ListPipelines(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to connect to API: %w", err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Team %s has %d pipeline(s)\n", clientConfig.Team.Name, len(pipelines))
			}

			config := loadConfig(viper.GetViper())
			config.API = clientConfig.APIURL
			config.Team = clientConfig.Team
			config.Token = token

			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			err = saveConfigStruct(configFile, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as team %s\n", config.API, config.Team.Name)

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "store the credentials without contacting the API")

	return cmd
}

// promptToken reads a token without echo when stdin is a terminal.
func promptToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Token: ")

	byteToken, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	return strings.TrimSpace(string(byteToken)), nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the Concourse API",
		Long:  "Remove the stored bearer token from the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.ConfigFileUsed() == "" {
				return constants.ErrNotAuthenticated
			}

			config := loadConfig(viper.GetViper())
			config.Token = ""

			err := saveConfigStruct(viper.ConfigFileUsed(), config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}
