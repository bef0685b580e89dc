package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// decoderConfig mimics the shape of the codec configs this package serves:
// a couple of validated knobs and one that cannot fail.
type decoderConfig struct {
	budget  int
	depth   int
	lenient bool
}

func withBudget(n int) Option[*decoderConfig] {
	return New(func(c *decoderConfig) error {
		if n < 0 {
			return errors.New("budget must be non-negative")
		}
		c.budget = n

		return nil
	})
}

func withDepth(n int) Option[*decoderConfig] {
	return New(func(c *decoderConfig) error {
		if n <= 0 {
			return errors.New("depth must be positive")
		}
		c.depth = n

		return nil
	})
}

func withLenient(enabled bool) Option[*decoderConfig] {
	return NoError(func(c *decoderConfig) {
		c.lenient = enabled
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &decoderConfig{}

	err := Apply(cfg, withBudget(1024), withDepth(32), withLenient(true))
	require.NoError(t, err)
	require.Equal(t, 1024, cfg.budget)
	require.Equal(t, 32, cfg.depth)
	require.True(t, cfg.lenient)
}

func TestApply_LaterOptionWins(t *testing.T) {
	cfg := &decoderConfig{}

	err := Apply(cfg, withBudget(10), withBudget(20))
	require.NoError(t, err)
	require.Equal(t, 20, cfg.budget)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &decoderConfig{}

	err := Apply(cfg, withBudget(5), withDepth(0), withLenient(true))
	require.Error(t, err)
	require.Contains(t, err.Error(), "depth must be positive")

	// The failing option aborts the chain: earlier effects stick, later
	// options never run.
	require.Equal(t, 5, cfg.budget)
	require.False(t, cfg.lenient)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &decoderConfig{budget: 7}

	require.NoError(t, Apply(cfg))
	require.Equal(t, 7, cfg.budget)
}

func TestNew_PropagatesError(t *testing.T) {
	cfg := &decoderConfig{}

	err := Apply(cfg, withBudget(-1))
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-negative")
}

func TestNoError_NeverFails(t *testing.T) {
	cfg := &decoderConfig{}

	require.NoError(t, Apply(cfg, withLenient(true)))
	require.True(t, cfg.lenient)
}

func TestOption_OtherTargetTypes(t *testing.T) {
	var count int
	increment := NoError(func(n *int) { *n += 3 })

	require.NoError(t, Apply(&count, increment, increment))
	require.Equal(t, 6, count)
}
