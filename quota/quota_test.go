package quota_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencount/rcvcore/quota"
)

func TestDroop(t *testing.T) {
	cases := []struct {
		n, seats, want int
	}{
		{100, 1, 51},  // S1
		{10, 2, 4},    // S2
		{12, 2, 5},    // S3
		{15, 2, 6},    // S4
		{9, 2, 4},
	}
	for _, c := range cases {
		require.Equal(t, c.want, quota.Droop(c.n, c.seats))
	}
}
