package audit_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fabiopiovam/dj-la-library-system/internal/audit"
)

func TestConsumer_SurvivesRebalances(t *testing.T) {
	t.Parallel()

	// The consumer group session loop re-enters Setup after every
	// rebalance; the lifecycle hooks must tolerate repeated sessions.
	consumer := audit.NewConsumer(nil, zap.NewNop())
	for i := 0; i < 3; i++ {
		require.NotPanics(t, func() {
			require.NoError(t, consumer.Setup(nil))
			require.NoError(t, consumer.Cleanup(nil))
		})
	}
}
