package mock_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/fwojciec/sbmb"
	"github.com/fwojciec/sbmb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where BatchWriter is expected
	var _ sbmb.BatchWriter = &mock.BatchWriter{}
}

func TestBatchWriter_WriteBatch(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteBatchFn", func(t *testing.T) {
		t.Parallel()

		var calledWith sbmb.Batch
		w := &mock.BatchWriter{
			WriteBatchFn: func(_ context.Context, out io.Writer, batch sbmb.Batch) (bool, error) {
				calledWith = batch
				_, err := io.WriteString(out, "ok")
				return true, err
			},
		}
		batch := sbmb.Batch{DocType: "law", Year: 2017}
		var buf bytes.Buffer

		ok, err := w.WriteBatch(context.Background(), &buf, batch)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, batch, calledWith)
		assert.Equal(t, "ok", buf.String())
	})
}
