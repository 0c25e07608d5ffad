package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Room struct {
	id               uuid.UUID
	name             string
	slug             string
	shortDescription string
	fullDescription  string
	basePrice        decimal.Decimal
	isActive         bool
	createdAt        time.Time
}

func ReconstructRoom(
	id uuid.UUID,
	name, slug, shortDescription, fullDescription string,
	basePrice decimal.Decimal,
	isActive bool,
	createdAt time.Time,
) *Room {
	return &Room{
		id:               id,
		name:             name,
		slug:             slug,
		shortDescription: shortDescription,
		fullDescription:  fullDescription,
		basePrice:        basePrice,
		isActive:         isActive,
		createdAt:        createdAt,
	}
}

func (r *Room) ID() uuid.UUID              { return r.id }
func (r *Room) Name() string               { return r.name }
func (r *Room) Slug() string               { return r.slug }
func (r *Room) ShortDescription() string   { return r.shortDescription }
func (r *Room) FullDescription() string    { return r.fullDescription }
func (r *Room) BasePrice() decimal.Decimal { return r.basePrice }
func (r *Room) IsActive() bool             { return r.isActive }
func (r *Room) CreatedAt() time.Time       { return r.createdAt }
