package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/concourse-client/internal/constants"
	"github.com/fivetwenty-io/concourse-client/internal/validation"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
	"github.com/fivetwenty-io/concourse-client/pkg/teamclient"
)

// Config represents the CLI configuration file.
type Config struct {
	API      string          `json:"api,omitempty"       yaml:"api,omitempty"`
	Team     *concourse.Team `json:"team,omitempty"      yaml:"team,omitempty"`
	Token    string          `json:"token,omitempty"     yaml:"token,omitempty"`
	Output   string          `json:"output,omitempty"    yaml:"output,omitempty"`
	RetryMax int             `json:"retry_max,omitempty" yaml:"retry_max,omitempty"`
	Timeout  string          `json:"timeout,omitempty"   yaml:"timeout,omitempty"`
	Cache    *CacheSettings  `json:"cache,omitempty"     yaml:"cache,omitempty"`
}

// CacheSettings is the cache section of the config file.
type CacheSettings struct {
	Type string        `json:"type,omitempty" yaml:"type,omitempty"`
	TTL  string        `json:"ttl,omitempty"  yaml:"ttl,omitempty"`
	NATS *NATSSettings `json:"nats,omitempty" yaml:"nats,omitempty"`
}

// NATSSettings selects the JetStream bucket of the nats cache.
type NATSSettings struct {
	URL    string `json:"url,omitempty"    yaml:"url,omitempty"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Inspect the Concourse CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig(viper.GetViper())
			if config.Token != "" {
				config.Token = constants.MaskedSecret
			}

			out := cmd.OutOrStdout()

			switch viper.GetString("output") {
			case constants.FormatJSON:
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				return yaml.NewEncoder(out).Encode(config)
			default:
				return displayConfigTable(cmd, config)
			}
		},
	}
}

// loadConfig reads the configuration leniently, for display and persistence.
func loadConfig(v *viper.Viper) *Config {
	config := &Config{
		API:      v.GetString("api"),
		Token:    v.GetString("token"),
		Output:   v.GetString("output"),
		RetryMax: v.GetInt("retry_max"),
		Timeout:  v.GetString("timeout"),
	}

	var team concourse.Team
	if v.IsSet("team") && v.UnmarshalKey("team", &team) == nil && team.Name != "" {
		config.Team = &team
	}

	if v.IsSet("cache.type") {
		config.Cache = &CacheSettings{
			Type: v.GetString("cache.type"),
			TTL:  v.GetString("cache.ttl"),
		}

		if v.IsSet("cache.nats.url") {
			config.Cache.NATS = &NATSSettings{
				URL:    v.GetString("cache.nats.url"),
				Bucket: v.GetString("cache.nats.bucket"),
			}
		}
	}

	return config
}

// rawClientValues collects the untyped values the client is built from.
// A --team flag replaces the configured team.
func rawClientValues(v *viper.Viper, teamFlag string) map[string]interface{} {
	team := v.Get("team")
	if teamFlag != "" {
		team = map[string]interface{}{"name": teamFlag}
	}

	return map[string]interface{}{
		validation.FieldAPIURL: v.Get("api"),
		validation.FieldTeam:   team,
	}
}

// buildClientConfig validates the raw configuration and decodes it.
func buildClientConfig(v *viper.Viper, teamFlag string) (*concourse.Config, error) {
	err := validation.Validate(validation.ClientSchema, rawClientValues(v, teamFlag))
	if err != nil {
		return nil, err
	}

	team := concourse.Team{Name: teamFlag}
	if teamFlag == "" {
		err = v.UnmarshalKey("team", &team)
		if err != nil {
			return nil, fmt.Errorf("decoding team: %w", err)
		}
	}

	config := &concourse.Config{
		APIURL:   v.GetString("api"),
		Team:     &team,
		Token:    v.GetString("token"),
		RetryMax: v.GetInt("retry_max"),
	}

	if v.IsSet("timeout") {
		config.HTTPTimeout = v.GetDuration("timeout")
	}

	if v.IsSet("cache.type") {
		config.Cache = &concourse.CacheConfig{
			Type:       concourse.CacheType(v.GetString("cache.type")),
			TTL:        v.GetDuration("cache.ttl"),
			NATSURL:    v.GetString("cache.nats.url"),
			NATSBucket: v.GetString("cache.nats.bucket"),
		}
	}

	return config, nil
}

// createClient builds a pipelines client from flags, environment and config file.
func createClient(cmd *cobra.Command) (concourse.TeamPipelinesClient, error) {
	teamFlag, _ := cmd.Flags().GetString("team")

	config, err := buildClientConfig(viper.GetViper(), teamFlag)
	if err != nil {
		return nil, err
	}

	verbose := viper.GetBool("verbose")
	config.Logger = newLogger(cmd.ErrOrStderr(), verbose)
	config.Debug = verbose

	return teamclient.New(config)
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, constants.ConfigDirName)

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, constants.ConfigFileName+".yml"), nil
}

func saveConfigStruct(configFile string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(cmd *cobra.Command, config *Config) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Setting", "Value")

	teamName, teamID := constants.NotAvailable, constants.NotAvailable
	if config.Team != nil {
		teamName = config.Team.Name
		if config.Team.ID > 0 {
			teamID = strconv.Itoa(config.Team.ID)
		}
	}

	cacheType := string(concourse.CacheTypeNone)
	if config.Cache != nil && config.Cache.Type != "" {
		cacheType = config.Cache.Type
	}

	_ = table.Append("API", formatConfigValue(config.API))
	_ = table.Append("Team", teamName)
	_ = table.Append("Team ID", teamID)
	_ = table.Append("Token", formatConfigValue(config.Token))
	_ = table.Append("Retry Max", strconv.Itoa(config.RetryMax))
	_ = table.Append("Timeout", formatConfigValue(config.Timeout))
	_ = table.Append("Cache", cacheType)

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Local().Format(constants.TimeFormat)
}
