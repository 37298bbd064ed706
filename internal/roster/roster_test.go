package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	employee, ok := Lookup("120032")
	require.True(t, ok)
	assert.Equal(t, "이주헌", employee.Name)

	_, ok = Lookup("999999")
	assert.False(t, ok)
}

func TestVerifyCredential(t *testing.T) {
	assert.True(t, VerifyCredential("120032", "120032"))
	assert.False(t, VerifyCredential("120032", "120033"))
	assert.True(t, VerifyCredential(AdminID, "1111"))
	assert.False(t, VerifyCredential(AdminID, "wrong"))
	assert.False(t, VerifyCredential("unknown", "unknown"))
}
