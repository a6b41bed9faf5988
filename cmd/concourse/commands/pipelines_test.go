package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/concourse-client/internal/constants"
	"github.com/fivetwenty-io/concourse-client/pkg/concourse"
)

var errPipelineNotFound = errors.New("pipeline not found")

// fakePipelinesClient serves pipelines from memory.
type fakePipelinesClient struct {
	mu        sync.Mutex
	pipelines map[string]concourse.Pipeline
	deleted   []string
}

func newFakePipelinesClient(names ...string) *fakePipelinesClient {
	client := &fakePipelinesClient{pipelines: make(map[string]concourse.Pipeline)}
	for i, name := range names {
		client.pipelines[name] = concourse.Pipeline{
			ID:         i + 1,
			Name:       name,
			Identifier: "main/" + name,
			Team:       concourse.Team{ID: 1, Name: "main"},
		}
	}

	return client
}

func (f *fakePipelinesClient) Team() concourse.Team {
	return concourse.Team{ID: 1, Name: "main"}
}

func (f *fakePipelinesClient) ListPipelines(ctx context.Context) ([]concourse.Pipeline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pipelines := make([]concourse.Pipeline, 0, len(f.pipelines))
	for _, pipeline := range f.pipelines {
		pipelines = append(pipelines, pipeline)
	}

	return pipelines, nil
}

func (f *fakePipelinesClient) GetPipeline(ctx context.Context, pipelineName string) (*concourse.Pipeline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pipeline, ok := f.pipelines[pipelineName]
	if !ok {
		return nil, errPipelineNotFound
	}

	return &pipeline, nil
}

func (f *fakePipelinesClient) DeletePipeline(ctx context.Context, pipelineName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.pipelines[pipelineName]; !ok {
		return errPipelineNotFound
	}

	delete(f.pipelines, pipelineName)
	f.deleted = append(f.deleted, pipelineName)

	return nil
}

func (f *fakePipelinesClient) Close() error {
	return nil
}

func commandWithContext() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	return cmd
}

func TestNewPipelinesCommand(t *testing.T) {
	t.Parallel()

	cmd := NewPipelinesCommand()
	assert.Equal(t, "pipelines", cmd.Use)
	assert.Equal(t, []string{"pipeline", "ps"}, cmd.Aliases)
	assert.Equal(t, "Manage team pipelines", cmd.Short)

	expected := []string{"list", "get", "delete"}
	for _, name := range expected {
		sub := findSubcommand(cmd, name)
		require.NotNil(t, sub, "expected subcommand %s", name)
		assert.NotNil(t, sub.RunE)
	}

	deleteCmd := findSubcommand(cmd, "delete")
	forceFlag := deleteCmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
}

func TestPipelinesCommand_Args(t *testing.T) {
	t.Parallel()

	cmd := NewPipelinesCommand()

	listCmd := findSubcommand(cmd, "list")
	require.Error(t, listCmd.Args(listCmd, []string{"extra"}))
	require.NoError(t, listCmd.Args(listCmd, nil))

	getCmd := findSubcommand(cmd, "get")
	require.Error(t, getCmd.Args(getCmd, nil))
	require.NoError(t, getCmd.Args(getCmd, []string{"a", "b"}))

	deleteCmd := findSubcommand(cmd, "delete")
	require.Error(t, deleteCmd.Args(deleteCmd, nil))
}

func TestPipelinesDelete_Cancelled(t *testing.T) {
	t.Parallel()

	cmd := NewPipelinesCommand()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(bytes.NewBufferString("n\n"))
	cmd.SetArgs([]string{"delete", "deploy-app"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Really delete pipeline(s) deploy-app? (y/N): ")
	assert.Contains(t, out.String(), "Cancelled")
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{input: "y\n", expected: true},
		{input: "YES\n", expected: true},
		{input: " yes \n", expected: true},
		{input: "n\n", expected: false},
		{input: "\n", expected: false},
		{input: "", expected: false},
	}

	for _, tt := range tests {
		cmd := &cobra.Command{}
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetIn(bytes.NewBufferString(tt.input))

		assert.Equal(t, tt.expected, confirm(cmd, "Proceed?"), "input %q", tt.input)
	}
}

func TestGetPipelines(t *testing.T) {
	t.Parallel()

	client := newFakePipelinesClient("a", "b", "c", "d")

	pipelines, err := getPipelines(commandWithContext(), client, []string{"d", "a", "c"})
	require.NoError(t, err)
	require.Len(t, pipelines, 3)
	assert.Equal(t, "d", pipelines[0].Name)
	assert.Equal(t, "a", pipelines[1].Name)
	assert.Equal(t, "c", pipelines[2].Name)

	_, err = getPipelines(commandWithContext(), client, []string{"a", "missing"})
	require.Error(t, err)
	require.ErrorIs(t, err, errPipelineNotFound)
	assert.Contains(t, err.Error(), "failed to get pipeline missing")
}

func TestDeletePipelines(t *testing.T) {
	t.Parallel()

	client := newFakePipelinesClient("a", "b", "c")

	cmd := commandWithContext()

	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, deletePipelines(cmd, client, []string{"a", "c"}))
	assert.ElementsMatch(t, []string{"a", "c"}, client.deleted)
	assert.Contains(t, out.String(), "Deleted pipeline main/a\n")
	assert.Contains(t, out.String(), "Deleted pipeline main/c\n")

	remaining, err := client.ListPipelines(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].Name)

	err = deletePipelines(commandWithContext(), client, []string{"a"})
	require.ErrorIs(t, err, errPipelineNotFound)
}

func TestDeletePipelines_ReportsSuccessesAlongsideFailure(t *testing.T) {
	t.Parallel()

	client := newFakePipelinesClient("a", "c")

	cmd := commandWithContext()

	var out bytes.Buffer
	cmd.SetOut(&out)

	err := deletePipelines(cmd, client, []string{"a", "missing", "c"})
	require.ErrorIs(t, err, errPipelineNotFound)
	assert.Contains(t, err.Error(), "failed to delete pipeline missing")

	assert.ElementsMatch(t, []string{"a", "c"}, client.deleted)
	assert.Contains(t, out.String(), "Deleted pipeline main/a\n")
	assert.Contains(t, out.String(), "Deleted pipeline main/c\n")
	assert.NotContains(t, out.String(), "main/missing")
}

func samplePipelines() []concourse.Pipeline {
	return []concourse.Pipeline{
		{
			ID:          1,
			Name:        "deploy-app",
			Identifier:  "main/deploy-app",
			Team:        concourse.Team{ID: 1, Name: "main"},
			Paused:      true,
			LastUpdated: time.Unix(1700000000, 0).UTC(),
		},
		{
			ID:         2,
			Name:       "nightly",
			Identifier: "main/nightly",
			Team:       concourse.Team{ID: 1, Name: "main"},
			Public:     true,
		},
	}
}

func TestRenderPipelines(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderPipelines(&out, constants.FormatJSON, samplePipelines()))

		var decoded []map[string]interface{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "main/deploy-app", decoded[0]["identifier"])
		assert.Equal(t, true, decoded[0]["paused"])
		assert.Equal(t, "2023-11-14T22:13:20Z", decoded[0]["lastUpdated"])
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderPipelines(&out, constants.FormatYAML, samplePipelines()))
		assert.Contains(t, out.String(), "identifier: main/nightly")
	})

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderPipelines(&out, constants.FormatTable, samplePipelines()))
		assert.Contains(t, out.String(), "deploy-app")
		assert.Contains(t, out.String(), "nightly")
		assert.Contains(t, out.String(), constants.NotAvailable)
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderPipelines(&out, "", nil))
		assert.Equal(t, "No pipelines found\n", out.String())
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()

		err := renderPipelines(&bytes.Buffer{}, "xml", samplePipelines())
		require.ErrorIs(t, err, constants.ErrUnsupportedOutputFormat)
		assert.Contains(t, err.Error(), "xml")
	})
}
