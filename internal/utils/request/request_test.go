package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathID(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/students/7", nil)
	r.SetPathValue("id", "7")

	id, err := PathID(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	r.SetPathValue("id", "seven")
	_, err = PathID(r, "id")
	assert.EqualError(t, err, "invalid id: must be an integer")
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		target  string
		want    int
		wantErr bool
	}{
		{"/x", 18, false},
		{"/x?min_age=", 18, false},
		{"/x?min_age=15", 15, false},
		{"/x?min_age=-3", -3, false},
		{"/x?min_age=abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := QueryInt(httptest.NewRequest("GET", tt.target, nil), "min_age", 18)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
