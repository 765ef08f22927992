package darwin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := New(Options{StoreKind: "memory"})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, client.Close())
	})
	return client
}

func TestRunPersistsEverything(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	survivalRate := 0.3
	summary, err := client.Run(ctx, RunRequest{
		Problem:      "onemax",
		Population:   30,
		SurvivalRate: &survivalRate,
		Generations:  15,
		Seed:         7,
	})
	require.NoError(t, err)
	require.NotEmpty(t, summary.RunID)
	require.Equal(t, "onemax", summary.Problem)
	require.Equal(t, 15, summary.Generations)
	require.Len(t, summary.BestByGeneration, 15)
	require.NotEmpty(t, summary.BestSolution)

	runs, err := client.Runs(ctx, RunsRequest{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, summary.RunID, runs[0].RunID)
	require.Equal(t, summary.FinalBestFitness, runs[0].BestFitness)
	require.NotEmpty(t, runs[0].CreatedAtUTC)

	history, err := client.FitnessHistory(ctx, FitnessHistoryRequest{RunID: summary.RunID, Limit: 0})
	require.NoError(t, err)
	require.Equal(t, summary.BestByGeneration, history)

	diagnostics, err := client.Diagnostics(ctx, DiagnosticsRequest{RunID: summary.RunID})
	require.NoError(t, err)
	require.Len(t, diagnostics, 15)
}

func TestRunDefaultsToOneMax(t *testing.T) {
	client := newTestClient(t)

	summary, err := client.Run(context.Background(), RunRequest{
		Population:  20,
		Generations: 5,
		Seed:        1,
	})
	require.NoError(t, err)
	require.Equal(t, "onemax", summary.Problem)
}

func TestRunHonorsZeroSurvivalRate(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	zero := 0.0
	summary, err := client.Run(ctx, RunRequest{
		Problem:      "onemax",
		Population:   10,
		SurvivalRate: &zero,
		Generations:  3,
		Seed:         1,
	})
	require.NoError(t, err)
	require.Equal(t, 3, summary.Generations)

	runs, err := client.Runs(ctx, RunsRequest{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, 0.0, runs[0].SurvivalRate)
}

func TestRunUnknownProblem(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Run(context.Background(), RunRequest{Problem: "knapsack"})
	require.Error(t, err)
}

func TestLatestResolvesNewestRun(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	first, err := client.Run(ctx, RunRequest{Problem: "onemax", Population: 10, Generations: 3, Seed: 1})
	require.NoError(t, err)
	second, err := client.Run(ctx, RunRequest{Problem: "onemax", Population: 10, Generations: 4, Seed: 2})
	require.NoError(t, err)
	require.NotEqual(t, first.RunID, second.RunID)

	history, err := client.FitnessHistory(ctx, FitnessHistoryRequest{Latest: true})
	require.NoError(t, err)
	require.Equal(t, second.BestByGeneration, history)
}

func TestHistoryRequestValidation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.FitnessHistory(ctx, FitnessHistoryRequest{})
	require.Error(t, err)

	_, err = client.FitnessHistory(ctx, FitnessHistoryRequest{RunID: "x", Latest: true})
	require.Error(t, err)

	_, err = client.FitnessHistory(ctx, FitnessHistoryRequest{Latest: true})
	require.Error(t, err) // no runs yet

	_, err = client.FitnessHistory(ctx, FitnessHistoryRequest{RunID: "missing"})
	require.Error(t, err)
}

func TestHistoryLimitTruncates(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{Problem: "onemax", Population: 10, Generations: 10, Seed: 3})
	require.NoError(t, err)

	history, err := client.FitnessHistory(ctx, FitnessHistoryRequest{RunID: summary.RunID, Limit: 4})
	require.NoError(t, err)
	require.Len(t, history, 4)
}

func TestProblemsLists(t *testing.T) {
	client := newTestClient(t)

	problems, err := client.Problems(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(problems))
	for _, p := range problems {
		names = append(names, p.Name)
		require.NotEmpty(t, p.Description)
	}
	require.Contains(t, names, "onemax")
	require.Contains(t, names, "sphere")
	require.Contains(t, names, "trap")
}
