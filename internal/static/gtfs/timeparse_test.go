package gtfs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeToSeconds(t *testing.T) {
	tests := []struct {
		input string
		want  NullInt
	}{
		{"00:00:00", NewNullInt(0)},
		{"08:15:00", NewNullInt(8*3600 + 15*60)},
		{"23:59:59", NewNullInt(86399)},
		{"25:05:00", NewNullInt(25*3600 + 5*60)},
		{"47:00:01", NewNullInt(47*3600 + 1)},
		{"8:5:3", NewNullInt(8*3600 + 5*60 + 3)},
		{" 08:15:00", NewNullInt(8*3600 + 15*60)},
		{"", NullInt{}},
		{"08:15", NullInt{}},
		{"08:15:00:00", NullInt{}},
		{"ab:cd:ef", NullInt{}},
		{"08:15:0x", NullInt{}},
		{"08:15:00.5", NullInt{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTimeToSeconds(tt.input))
		})
	}
}

func TestParseTimeToSecondsMatchesFormula(t *testing.T) {
	for h := 0; h < 30; h += 7 {
		for m := 0; m < 60; m += 13 {
			for s := 0; s < 60; s += 17 {
				in := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
				got := ParseTimeToSeconds(in)
				assert.True(t, got.Valid, in)
				assert.Equal(t, h*3600+m*60+s, got.Int, in)
			}
		}
	}
}

func TestParseOptionalTime(t *testing.T) {
	assert.False(t, ParseOptionalTime(nil).Valid)

	v := "01:00:00"
	assert.Equal(t, NewNullInt(3600), ParseOptionalTime(&v))
}
