package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hours float64
		want  string
	}{
		{0, "0h 0m"},
		{8, "8h 0m"},
		{7.5, "7h 30m"},
		{7.999, "8h 0m"}, // minute round-up carries into the hour
		{7.999999, "8h 0m"},
		{0.008, "0h 0m"},
		{0.009, "0h 1m"},
		{176.5, "176h 30m"},
		{1.0166666, "1h 1m"},
		{-1, "0h 0m"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FormatHours(c.hours), "FormatHours(%v)", c.hours)
	}
}
