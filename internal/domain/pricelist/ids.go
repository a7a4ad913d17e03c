package pricelist

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator genera identificadores opacos de fila, válidos solo dentro de una sesión de edición.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator ids aleatorios (uuid v4).
type UUIDGenerator struct{}

// NewID implementa IDGenerator.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SequenceGenerator ids monotónicos "<prefix><n>"; útil cuando se necesita un orden reproducible.
type SequenceGenerator struct {
	Prefix string
	n      atomic.Uint64
}

// NewID implementa IDGenerator.
func (g *SequenceGenerator) NewID() string {
	return g.Prefix + strconv.FormatUint(g.n.Add(1), 10)
}
