package textsummary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/IgorBayerl/opcode_counter/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReport(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  string
	}{
		{
			name:  "no opcodes",
			count: 0,
			want:  "There is currently 0 VM opcodes.\n",
		},
		{
			name:  "two opcodes",
			count: 2,
			want:  "There is currently 2 VM opcodes.\n",
		},
		{
			name:  "exactly at the limit",
			count: 256,
			want:  "There is currently 256 VM opcodes.\n",
		},
		{
			name:  "one over the limit",
			count: 257,
			want:  "There is currently 257 VM opcodes.\nWARNING: opcodes is over the limit of a byte\n",
		},
		{
			name:  "far over the limit",
			count: 300,
			want:  "There is currently 300 VM opcodes.\nWARNING: opcodes is over the limit of a byte\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			summary := &analyzer.Summary{Count: tt.count, Limit: analyzer.ByteLimit, Marker: analyzer.DefaultMarker}

			require.NoError(t, NewTextReportBuilder(&out).CreateReport(summary))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCreateReport_WriteError(t *testing.T) {
	err := NewTextReportBuilder(failingWriter{}).CreateReport(&analyzer.Summary{Count: 1, Limit: 256})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestReportType(t *testing.T) {
	assert.Equal(t, "TextSummary", NewTextReportBuilder(&bytes.Buffer{}).ReportType())
}
