package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/commerce-tools/order-export/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	fields := []domain.FieldSpec{
		{Code: "increment_id", Label: "Order #"},
		{Code: "status", Label: "Status"},
	}
	rows := [][]string{
		{"100000001", "Complete"},
		{"100000002", "Pending"},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(fields, rows))

	out := buf.String()
	assert.Contains(t, out, "Order # : 100000001")
	assert.Contains(t, out, "Status : Complete")
	assert.Contains(t, out, "Order # : 100000002")
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("-", 100)))
}

func TestReporter_Handle_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(nil, nil))
	assert.Empty(t, buf.String())
}
