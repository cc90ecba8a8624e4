package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNAPaymentIDs(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{
			name: "ids one per line under header",
			ids:  []string{"pay_Abc123", "pay_Def456"},
			want: "payment_id\npay_Abc123\npay_Def456\n",
		},
		{
			name: "no ids still writes header",
			ids:  nil,
			want: "payment_id\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteNAPaymentIDs(&buf, tt.ids))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSaveNAPaymentIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "na_ids.csv")
	require.NoError(t, SaveNAPaymentIDs(path, []string{"pay_X"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payment_id\npay_X\n", string(data))
}
