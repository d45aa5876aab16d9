package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSlotDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso", input: "2026-03-09", want: "2026-03-09"},
		{name: "locale", input: "09.03.2026", want: "2026-03-09"},
		{name: "locale zero padded", input: "01.01.2026", want: "2026-01-01"},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "wrong separator", input: "2026/03/09", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlotDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSlotDateOrdering(t *testing.T) {
	// Normalized dates must compare lexicographically in chronological order.
	earlier, err := ParseSlotDate("09.03.2026")
	assert.NoError(t, err)
	later, err := ParseSlotDate("10.03.2026")
	assert.NoError(t, err)
	assert.Less(t, earlier, later)
}

func TestParseSlotTime(t *testing.T) {
	got, err := ParseSlotTime("09:30")
	assert.NoError(t, err)
	assert.Equal(t, "09:30", got)

	_, err = ParseSlotTime("9:30pm")
	assert.Error(t, err)

	_, err = ParseSlotTime("25:00")
	assert.Error(t, err)
}
