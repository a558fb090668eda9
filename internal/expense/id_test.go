package expense_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    expense.ID
		wantErr bool
	}{
		{name: "Integer", in: `1`, want: "1"},
		{name: "String", in: `"0b9e1c3a-3f7e-4c0e-9a51-6f4d1f3c2b7a"`, want: "0b9e1c3a-3f7e-4c0e-9a51-6f4d1f3c2b7a"},
		{name: "NumericString", in: `"42"`, want: "42"},
		{name: "Null", in: `null`, want: ""},
		{name: "Bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id expense.ID

			err := json.Unmarshal([]byte(tt.in), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestID_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A expense.ID `json:"a"`
		B expense.ID `json:"b"`
	}{A: "7", B: "abc"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":7,"b":"abc"}`, string(b))
	assert.False(t, expense.NewID().IsZero())
	assert.NotEqual(t, expense.NewID(), expense.NewID())
}
