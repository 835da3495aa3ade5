package netscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePorts(t *testing.T) {
	got, err := ParsePorts("22, 80,8000-8002")
	require.NoError(t, err)
	assert.Equal(t, []int{22, 80, 8000, 8001, 8002}, got)

	for _, bad := range []string{"", "abc", "0", "65536", "10-5", "1-x", ",,"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParsePorts(bad)
			var ite *InvalidTargetError
			assert.ErrorAs(t, err, &ite)
		})
	}
}

func TestParseRange(t *testing.T) {
	lo, hi, err := ParseRange("1-1024")
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 1024, hi)

	_, _, err = ParseRange("1024")
	assert.Error(t, err)
	_, _, err = ParseRange("0-10")
	assert.Error(t, err)
}
