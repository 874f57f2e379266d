package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolRejectsBadConnString(t *testing.T) {
	_, err := NewPool("://not-a-dsn", 4, time.Minute, time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}
