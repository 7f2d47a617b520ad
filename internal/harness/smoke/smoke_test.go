package smoke

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog/internal/config"
	"book-catalog/internal/harness/apiclient"
	"book-catalog/internal/harness/testserver"
)

func TestDefaultScenariosPass(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			srv := testserver.Start(t, testserver.Config(driver))

			report, err := Run(context.Background(), srv.URL, DefaultScenarios())
			require.NoError(t, err)

			var out bytes.Buffer
			report.Write(&out)
			assert.Zero(t, report.Failed(), out.String())
			assert.Equal(t, len(DefaultScenarios()), report.Passed())
		})
	}
}

func TestReportCountsFailures(t *testing.T) {
	srv := testserver.Start(t, testserver.Config(config.DriverMemory))

	report, err := Run(context.Background(), srv.URL, []Scenario{
		{"ok", func(context.Context, *apiclient.Client) error { return nil }},
		{"broken", func(context.Context, *apiclient.Client) error { return errors.New("status: want 200, got 500") }},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed())
	assert.Equal(t, 1, report.Failed())

	var out bytes.Buffer
	report.Write(&out)
	assert.Contains(t, out.String(), "FAIL broken")
	assert.Contains(t, out.String(), "1 passed, 1 failed")
}

func TestFaultScenarioFailsWhenDisabled(t *testing.T) {
	cfg := testserver.Config(config.DriverMemory)
	cfg.Features.FaultInjection = false
	srv := testserver.Start(t, cfg)

	c, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	assert.Error(t, updateFaultScenario(context.Background(), c))
}
