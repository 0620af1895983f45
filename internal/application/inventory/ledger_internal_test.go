package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockOrder_FiltraOrdenaYDeduplica(t *testing.T) {
	ids := []string{
		"00000000-0000-0000-0000-00000000000b",
		"no-es-uuid",
		"00000000-0000-0000-0000-00000000000a",
		"00000000-0000-0000-0000-00000000000b",
		"",
	}
	assert.Equal(t, []string{
		"00000000-0000-0000-0000-00000000000a",
		"00000000-0000-0000-0000-00000000000b",
	}, lockOrder(ids))
	assert.Empty(t, lockOrder([]string{"x", "y"}))
}
