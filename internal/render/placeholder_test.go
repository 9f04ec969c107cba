package render

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rhammad/visitflow/internal/domain/visit"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderRender(t *testing.T) {
	v := &visit.Visit{
		Reference:  "Acme (Corp) - 2025/03 - 1",
		ClientName: "Acme (Corp)",
		VisitDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Engineer:   "Jordan",
		State:      visit.StatePending,
	}

	data, err := NewPlaceholder().Render(context.Background(), v)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
	require.True(t, bytes.HasSuffix(bytes.TrimSpace(data), []byte("%%EOF")))
	require.Contains(t, string(data), `Acme \(Corp\)`, "parentheses escaped in content stream")
}

func TestPlaceholderRenderNilVisit(t *testing.T) {
	_, err := NewPlaceholder().Render(context.Background(), nil)
	require.Error(t, err)
}
