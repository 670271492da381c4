package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetCurrentTimeMillis(t *testing.T) {
	before := time.Now().UnixMilli()
	current := GetCurrentTimeMillis()
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, current, before)
	assert.LessOrEqual(t, current, after)
}
