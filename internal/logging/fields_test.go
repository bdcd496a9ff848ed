package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCommonAppendsServiceAndVersion(t *testing.T) {
	attrs := WithCommon(nil, "sportconnect", "dev")
	require.Len(t, attrs, 2)
	assert.Equal(t, FieldService, attrs[0].Key)
	assert.Equal(t, "sportconnect", attrs[0].Value.String())
	assert.Equal(t, FieldVersion, attrs[1].Key)
	assert.Equal(t, "dev", attrs[1].Value.String())
}

func TestWithCommonSkipsEmpty(t *testing.T) {
	attrs := WithCommon([]slog.Attr{slog.String(FieldMatchID, "m1")}, "", "")
	require.Len(t, attrs, 1)
	assert.Equal(t, FieldMatchID, attrs[0].Key)
}
