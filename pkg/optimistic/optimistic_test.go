package optimistic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repstack/repstack/pkg/result"
)

type versioned struct {
	token string
}

func (v versioned) Version() string { return v.token }

func TestNewTokensAreDistinct(t *testing.T) {
	t1 := NewToken()
	t2 := NewToken()

	assert.NotEmpty(t, t1)
	assert.NotEqual(t, t1, t2)
}

func TestCheckMatchingTokenProceeds(t *testing.T) {
	token := NewToken()

	assert.Nil(t, Check(versioned{token: token}, token))
}

func TestCheckMismatchedTokenConflicts(t *testing.T) {
	err := Check(versioned{token: NewToken()}, NewToken())

	require.NotNil(t, err)
	assert.Equal(t, result.CodeConcurrency, err.Code)
}
