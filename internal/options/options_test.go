package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	width int
	label string
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.width = 4 }),
		New(func(c *testConfig) error {
			c.label = "file"
			return nil
		}),
	)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.width)
	require.Equal(t, "file", cfg.label)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}
	boom := errors.New("boom")

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.width = 1 }),
		New(func(c *testConfig) error { return boom }),
		NoError(func(c *testConfig) { c.width = 2 }),
	)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, cfg.width) // later options must not run
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &testConfig{}
	require.NoError(t, Apply(cfg))
}
