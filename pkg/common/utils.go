package common

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GenerateTrxNo returns a short internal transaction number for
// human-facing references. Not a correlation key.
func GenerateTrxNo() string {
	const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, 7)
	for i := range result {
		result[i] = characters[r.Intn(len(characters))]
	}
	return string(result)
}

// GenerateClickId returns the opaque correlation token embedded in
// outbound redirect URLs. It must not collide over the system's
// lifetime and must not be guessable from earlier values, so it is a
// random UUID rather than anything sequential.
func GenerateClickId() string {
	return uuid.NewString()
}
