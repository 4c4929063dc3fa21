package headquarter

import (
	"context"
	"errors"
	"time"
)

type Headquarter struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Place struct {
	ID            string    `json:"id"`
	HeadquarterID string    `json:"headquarter_id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"created_at"`
}

var (
	ErrHeadquarterNotFound = errors.New("headquarter not found")
	ErrHeadquarterExists   = errors.New("headquarter already exists")
	ErrPlaceNotFound       = errors.New("place not found")
)

type HeadquarterRepository interface {
	Create(ctx context.Context, hq Headquarter) (Headquarter, error)
	List(ctx context.Context) ([]Headquarter, error)
	Delete(ctx context.Context, id string) error
	AddPlace(ctx context.Context, p Place) (Place, error)
	ListPlaces(ctx context.Context, headquarterID string) ([]Place, error)
	DeletePlace(ctx context.Context, id string) error
}
