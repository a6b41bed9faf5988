package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/concourse-client/internal/constants"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

// NewPipelinesCommand creates the pipelines command group.
func NewPipelinesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pipelines",
		Aliases: []string{"pipeline", "ps"},
		Short:   "Manage team pipelines",
		Long:    "List, inspect and delete the pipelines of a team",
	}

	cmd.AddCommand(newPipelinesListCommand())
	cmd.AddCommand(newPipelinesGetCommand())
	cmd.AddCommand(newPipelinesDeleteCommand())

	return cmd
}

func newPipelinesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pipelines",
		Long:  "List all pipelines of the team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			pipelines, err := client.ListPipelines(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list pipelines: %w", err)
			}

			return renderPipelines(cmd.OutOrStdout(), viper.GetString("output"), pipelines)
		},
	}
}

func newPipelinesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PIPELINE_NAME...",
		Short: "Get pipeline details",
		Long:  "Display one or more pipelines of the team",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			pipelines, err := getPipelines(cmd, client, args)
			if err != nil {
				return err
			}

			return renderPipelines(cmd.OutOrStdout(), viper.GetString("output"), pipelines)
		},
	}
}

func newPipelinesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PIPELINE_NAME...",
		Short: "Delete pipelines",
		Long:  "Delete one or more pipelines of the team",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd, fmt.Sprintf("Really delete pipeline(s) %s?", strings.Join(args, ", "))) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")

				return nil
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			defer func() { _ = client.Close() }()

			return deletePipelines(cmd, client, args)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

// getPipelines fetches names concurrently and returns them in argument order.
func getPipelines(cmd *cobra.Command, client concourse.TeamPipelinesClient, names []string) ([]concourse.Pipeline, error) {
	pipelines := make([]concourse.Pipeline, len(names))

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(constants.DefaultConcurrencyLimit)

	for i, name := range names {
		group.Go(func() error {
			pipeline, err := client.GetPipeline(ctx, name)
			if err != nil {
				return fmt.Errorf("failed to get pipeline %s: %w", name, err)
			}

			pipelines[i] = *pipeline

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return pipelines, nil
}

// deletePipelines prints each deletion as soon as it succeeds.
func deletePipelines(cmd *cobra.Command, client concourse.TeamPipelinesClient, names []string) error {
	var mu sync.Mutex

	teamName := client.Team().Name

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(constants.DefaultConcurrencyLimit)

	for _, name := range names {
		group.Go(func() error {
			err := client.DeletePipeline(ctx, name)
			if err != nil {
				return fmt.Errorf("failed to delete pipeline %s: %w", name, err)
			}

			mu.Lock()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted pipeline %s/%s\n", teamName, name)
			mu.Unlock()

			return nil
		})
	}

	return group.Wait()
}

func confirm(cmd *cobra.Command, question string) bool {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", question)

	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == constants.ConfirmationYes
}

func renderPipelines(out io.Writer, format string, pipelines []concourse.Pipeline) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(pipelines)
	case constants.FormatYAML:
		return yaml.NewEncoder(out).Encode(pipelines)
	case constants.FormatTable, "":
		if len(pipelines) == 0 {
			_, _ = fmt.Fprintln(out, "No pipelines found")

			return nil
		}

		table := tablewriter.NewWriter(out)
		table.Header("ID", "Name", "Team", "Paused", "Public", "Archived", "Last Updated")

		for _, pipeline := range pipelines {
			_ = table.Append(
				strconv.Itoa(pipeline.ID),
				pipeline.Name,
				pipeline.Team.Name,
				strconv.FormatBool(pipeline.Paused),
				strconv.FormatBool(pipeline.Public),
				strconv.FormatBool(pipeline.Archived),
				formatTime(pipeline.LastUpdated),
			)
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutputFormat, format)
	}
}
