package services

import (
	"context"
	"encoding/json"

	"bellezza-backend/apperror"
	"bellezza-backend/cache"
	"bellezza-backend/models"
	"bellezza-backend/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CatalogStore interface {
	ListCategories(ctx context.Context, f repository.CategoryFilter, page repository.Page) ([]models.Category, int64, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListServices(ctx context.Context, f repository.ServiceFilter, page repository.Page) ([]models.Service, int64, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	ServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error

	ListEmployees(ctx context.Context, f repository.EmployeeFilter, page repository.Page) ([]models.Employee, int64, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	EmployeesForService(ctx context.Context, serviceID uuid.UUID) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, e *models.Employee, services []models.Service) error
	UpdateEmployee(ctx context.Context, e *models.Employee, services []models.Service) error
	DeleteEmployee(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, f repository.ProductFilter, page repository.Page) ([]models.Product, int64, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ListResult is one page of a list together with the unpaginated total.
type ListResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

type ServicePatch struct {
	CategoryID  **uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
}

type EmployeePatch struct {
	Name       *string
	Position   *string
	ServiceIDs *[]uuid.UUID
}

type ProductPatch struct {
	CategoryID  **uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
}

// CatalogService serves the catalog through the read-through cache and drops
// the affected entries on every write.
type CatalogService struct {
	store CatalogStore
	cache *cache.Catalog
	log   logrus.FieldLogger
}

func NewCatalogService(store CatalogStore, c *cache.Catalog, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{store: store, cache: c, log: log}
}

func variant(filter any, page repository.Page) string {
	raw, _ := json.Marshal(struct {
		Filter any
		Page   repository.Page
	}{filter, page})
	return string(raw)
}

func cachedList[T any, F any](ctx context.Context, s *CatalogService, entity string, f F, page repository.Page,
	list func(context.Context, F, repository.Page) ([]T, int64, error)) ([]T, int64, error) {
	res, err := cache.GetOrLoad(ctx, s.cache, cache.Key(entity, "list:"+variant(f, page)), func(ctx context.Context) (ListResult[T], error) {
		items, total, err := list(ctx, f, page)
		return ListResult[T]{Items: items, Total: total}, err
	})
	return res.Items, res.Total, err
}

func cachedItem[T any](ctx context.Context, s *CatalogService, entity string, id uuid.UUID,
	get func(context.Context, uuid.UUID) (*T, error)) (*T, error) {
	return cache.GetOrLoad(ctx, s.cache, cache.ItemKey(entity, id.String()), func(ctx context.Context) (*T, error) {
		return get(ctx, id)
	})
}

func (s *CatalogService) invalidate(ctx context.Context, entities ...string) {
	patterns := make([]string, 0, len(entities))
	for _, e := range entities {
		patterns = append(patterns, cache.Pattern(e))
	}
	s.cache.Invalidate(ctx, patterns...)
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperror.Validation("price must not be negative")
	}
	return nil
}

func requireName(name string) error {
	if name == "" {
		return apperror.Validation("name is required")
	}
	return nil
}

// Categories

func (s *CatalogService) ListCategories(ctx context.Context, f repository.CategoryFilter, page repository.Page) ([]models.Category, int64, error) {
	return cachedList(ctx, s, cache.EntityCategories, f, page, s.store.ListCategories)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return cachedItem(ctx, s, cache.EntityCategories, id, s.store.GetCategory)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := requireName(c.Name); err != nil {
		return err
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx, cache.EntityCategories)
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if err := requireName(c.Name); err != nil {
		return nil, err
	}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.EntityCategories, cache.EntityServices, cache.EntityProducts)
	return c, nil
}

// SetCategoryImage stores a new image path and returns the previous one.
func (s *CatalogService) SetCategoryImage(ctx context.Context, id uuid.UUID, image string) (*models.Category, string, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, "", err
	}
	previous := c.Image
	c.Image = image
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, "", err
	}
	s.invalidate(ctx, cache.EntityCategories, cache.EntityServices, cache.EntityProducts)
	return c, previous, nil
}

// DeleteCategory removes the category together with its services and products.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.EntityCategories, cache.EntityServices, cache.EntityProducts, cache.EntityEmployees)
	return nil
}

// Services

func (s *CatalogService) ListServices(ctx context.Context, f repository.ServiceFilter, page repository.Page) ([]models.Service, int64, error) {
	return cachedList(ctx, s, cache.EntityServices, f, page, s.store.ListServices)
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return cachedItem(ctx, s, cache.EntityServices, id, s.store.GetService)
}

func (s *CatalogService) CreateService(ctx context.Context, svc *models.Service) error {
	if err := requireName(svc.Name); err != nil {
		return err
	}
	if err := validatePrice(svc.Price); err != nil {
		return err
	}
	if err := s.store.CreateService(ctx, svc); err != nil {
		return err
	}
	s.invalidate(ctx, cache.EntityServices)
	return nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, patch ServicePatch) (*models.Service, error) {
	svc, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil {
		svc.CategoryID = *patch.CategoryID
		svc.Category = nil
	}
	if patch.Name != nil {
		svc.Name = *patch.Name
	}
	if patch.Description != nil {
		svc.Description = *patch.Description
	}
	if patch.Price != nil {
		svc.Price = *patch.Price
	}
	if err := requireName(svc.Name); err != nil {
		return nil, err
	}
	if err := validatePrice(svc.Price); err != nil {
		return nil, err
	}
	if err := s.store.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.EntityServices, cache.EntityEmployees)
	return s.store.GetService(ctx, id)
}

func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteService(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.EntityServices, cache.EntityEmployees)
	return nil
}

// Employees

func (s *CatalogService) ListEmployees(ctx context.Context, f repository.EmployeeFilter, page repository.Page) ([]models.Employee, int64, error) {
	return cachedList(ctx, s, cache.EntityEmployees, f, page, s.store.ListEmployees)
}

func (s *CatalogService) GetEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return cachedItem(ctx, s, cache.EntityEmployees, id, s.store.GetEmployee)
}

// EmployeesForService is cached with the employee lists.
func (s *CatalogService) EmployeesForService(ctx context.Context, serviceID uuid.UUID) ([]models.Employee, error) {
	key := cache.Key(cache.EntityEmployees, "service:"+serviceID.String())
	return cache.GetOrLoad(ctx, s.cache, key, func(ctx context.Context) ([]models.Employee, error) {
		return s.store.EmployeesForService(ctx, serviceID)
	})
}

func (s *CatalogService) CreateEmployee(ctx context.Context, e *models.Employee, serviceIDs []uuid.UUID) error {
	if err := requireName(e.Name); err != nil {
		return err
	}
	services, err := s.store.ServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return err
	}
	if err := s.store.CreateEmployee(ctx, e, services); err != nil {
		return err
	}
	s.invalidate(ctx, cache.EntityEmployees)
	return nil
}

func (s *CatalogService) UpdateEmployee(ctx context.Context, id uuid.UUID, patch EmployeePatch) (*models.Employee, error) {
	e, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Position != nil {
		e.Position = *patch.Position
	}
	if err := requireName(e.Name); err != nil {
		return nil, err
	}

	var services []models.Service
	if patch.ServiceIDs != nil {
		if services, err = s.store.ServicesByIDs(ctx, *patch.ServiceIDs); err != nil {
			return nil, err
		}
	}
	if err := s.store.UpdateEmployee(ctx, e, services); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.EntityEmployees)
	return e, nil
}

// SetEmployeePhoto stores a new photo path and returns the previous one.
func (s *CatalogService) SetEmployeePhoto(ctx context.Context, id uuid.UUID, photo string) (*models.Employee, string, error) {
	e, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, "", err
	}
	previous := e.Photo
	e.Photo = photo
	if err := s.store.UpdateEmployee(ctx, e, nil); err != nil {
		return nil, "", err
	}
	s.invalidate(ctx, cache.EntityEmployees)
	return e, previous, nil
}

func (s *CatalogService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.EntityEmployees)
	return nil
}

// Products

func (s *CatalogService) ListProducts(ctx context.Context, f repository.ProductFilter, page repository.Page) ([]models.Product, int64, error) {
	return cachedList(ctx, s, cache.EntityProducts, f, page, s.store.ListProducts)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return cachedItem(ctx, s, cache.EntityProducts, id, s.store.GetProduct)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := requireName(p.Name); err != nil {
		return err
	}
	if err := validatePrice(p.Price); err != nil {
		return err
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx, cache.EntityProducts)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
		p.Category = nil
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if err := requireName(p.Name); err != nil {
		return nil, err
	}
	if err := validatePrice(p.Price); err != nil {
		return nil, err
	}
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cache.EntityProducts)
	return s.store.GetProduct(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.EntityProducts)
	return nil
}
