package product

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/nevesmarcos42/pricewise/internal/domain/money"
)

// CreateRequest holds the input for registering a new catalog product.
type CreateRequest struct {
	Name        string
	Description string
	Price       money.Money
	Stock       int
}

// Service manages the product catalog.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a product Service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create registers a new product. Names are compared case-insensitively;
// a duplicate yields ErrNameTaken. Prices below 0.01 are rejected.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !req.Price.AtLeastCent() {
		return nil, ErrInvalidPrice
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "check name")
	}
	if exists {
		return nil, ErrNameTaken
	}

	p := &Product{
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns catalog products matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	return s.repo.List(ctx, f)
}

// Get returns a single product by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}
