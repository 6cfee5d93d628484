package utils

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for pages, components and sessions.
// The original front end derived ids from timestamp+random; an injected
// generator keeps id assignment deterministic under test.
type IDGenerator interface {
	NewID() uuid.UUID
}

type uuidGenerator struct{}

func NewUUIDGenerator() IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() uuid.UUID {
	return uuid.New()
}

// SequentialIDGenerator produces ids 1, 2, 3, ... encoded into the last
// bytes of a uuid. Test use only.
type SequentialIDGenerator struct {
	mu   sync.Mutex
	next uint32
}

func NewSequentialIDGenerator() *SequentialIDGenerator {
	return &SequentialIDGenerator{}
}

func (g *SequentialIDGenerator) NewID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	var b [16]byte
	binary.BigEndian.PutUint32(b[12:], g.next)
	return uuid.UUID(b)
}
