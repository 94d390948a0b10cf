package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaseTTL(t *testing.T) {
	assert.Equal(t, 59*time.Second, leaseTTL(60*time.Second))
	assert.Equal(t, time.Second, leaseTTL(2*time.Second))

	// a one second interval must not collapse to zero, which redis treats
	// as a lease without expiry
	assert.Equal(t, time.Second, leaseTTL(time.Second))
}
