package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCommonAppendsServiceAndVersion(t *testing.T) {
	attrs := WithCommon(nil, "mlb-affiliates-service", "v1")
	require.Len(t, attrs, 2)
	assert.Equal(t, slog.String(FieldService, "mlb-affiliates-service"), attrs[0])
	assert.Equal(t, slog.String(FieldVersion, "v1"), attrs[1])
}

func TestWithCommonSkipsEmpty(t *testing.T) {
	existing := slog.Int(FieldGamePk, 745001)
	attrs := WithCommon([]slog.Attr{existing}, "", "")
	assert.Equal(t, []slog.Attr{existing}, attrs)
}
