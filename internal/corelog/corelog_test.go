package corelog

import (
	"bytes"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefaultDiscardsByDefault(t *testing.T) {
	l := Default()
	require.Equal(t, zerolog.New(io.Discard), l)
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(zerolog.New(&buf))
	defer SetDefault(zerolog.New(io.Discard))

	Default().Info().Msg("hello")
	require.Contains(t, buf.String(), "hello")
}
