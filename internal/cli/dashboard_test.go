package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prodhub-io/prodhub/internal/config"
	"github.com/prodhub-io/prodhub/internal/models"
)

func TestStartsMinimized(t *testing.T) {
	require.False(t, startsMinimized(nil))
	require.False(t, startsMinimized(models.NewHubConfig()))

	// The settings-tab toggle flows through SetStartMinimized; the saved
	// flag must flip the launch decision.
	cfg := config.SetStartMinimized(models.NewHubConfig(), true)
	require.True(t, startsMinimized(cfg))
	require.False(t, startsMinimized(config.SetStartMinimized(cfg, false)))
}
