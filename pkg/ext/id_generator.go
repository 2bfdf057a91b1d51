package ext

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator generates identifiers used to name scan report files.
type IDGenerator interface {
	GenerateID() string
}

// IDGeneratorFunc is an adapter to allow the use of ordinary functions as
// an IDGenerator.
type IDGeneratorFunc func() string

// GenerateID calls f().
func (f IDGeneratorFunc) GenerateID() string {
	return f()
}

// NewUUIDGenerator returns an IDGenerator of random (version 4) UUIDs.
func NewUUIDGenerator() IDGenerator {
	return IDGeneratorFunc(uuid.NewString)
}

// NewSequentialIDGenerator returns an IDGenerator that yields UUID shaped
// identifiers ending with 1, 2, 3 and so on. It's safe for concurrent use.
func NewSequentialIDGenerator() IDGenerator {
	var seq uint64
	return IDGeneratorFunc(func() string {
		return fmt.Sprintf("00000000-0000-0000-0000-%012d", atomic.AddUint64(&seq, 1))
	})
}
