package repository

import (
	"context"

	"bellezza-backend/apperror"
	"bellezza-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = apperror.NotFound("category not found")
	ErrServiceNotFound  = apperror.NotFound("service not found")
	ErrEmployeeNotFound = apperror.NotFound("employee not found")
	ErrProductNotFound  = apperror.NotFound("product not found")
)

type CategoryFilter struct {
	Search string
}

type ServiceFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
}

type EmployeeFilter struct {
	Position  string
	ServiceID *uuid.UUID
	Search    string
}

type ProductFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
}

// CatalogRepository stores categories, services, employees and products.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Categories

func (r *CatalogRepository) ListCategories(ctx context.Context, f CategoryFilter, page Page) ([]models.Category, int64, error) {
	q := r.db.WithContext(ctx)
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(f.Search))
	}
	return findPage[models.Category](q, page, "name ASC")
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return getByID[models.Category](ctx, r.db, id, ErrCategoryNotFound)
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "category with this name already exists")
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, c *models.Category) error {
	err := r.db.WithContext(ctx).Model(c).
		Select("Name", "Description", "Image").
		Updates(c).Error
	return translate(err, "category with this name already exists")
}

func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Category](ctx, r.db, id, ErrCategoryNotFound)
}

// Services

func (r *CatalogRepository) ListServices(ctx context.Context, f ServiceFilter, page Page) ([]models.Service, int64, error) {
	q := r.db.WithContext(ctx)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	return findPage[models.Service](q, page, "name ASC", "Category")
}

func (r *CatalogRepository) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return getByID[models.Service](ctx, r.db, id, ErrServiceNotFound, "Category")
}

// ServicesByIDs loads the given services and fails if any id is unknown.
func (r *CatalogRepository) ServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Service, error) {
	services := make([]models.Service, 0, len(ids))
	if len(ids) == 0 {
		return services, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	if len(services) != len(uniqueIDs(ids)) {
		return nil, apperror.Validation("unknown service in service set")
	}
	return services, nil
}

func (r *CatalogRepository) CreateService(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Omit("Category").Create(s).Error, "service already exists")
}

func (r *CatalogRepository) UpdateService(ctx context.Context, s *models.Service) error {
	err := r.db.WithContext(ctx).Model(s).
		Select("CategoryID", "Name", "Description", "Price").
		Updates(s).Error
	return translate(err, "service already exists")
}

func (r *CatalogRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Service](ctx, r.db, id, ErrServiceNotFound)
}

// Employees

func (r *CatalogRepository) ListEmployees(ctx context.Context, f EmployeeFilter, page Page) ([]models.Employee, int64, error) {
	q := r.db.WithContext(ctx)
	if f.Position != "" {
		q = q.Where("LOWER(position) = ?", toLower(f.Position))
	}
	if f.ServiceID != nil {
		q = q.Where("id IN (?)", r.db.Table("employee_services").
			Select("employee_id").Where("service_id = ?", *f.ServiceID))
	}
	if f.Search != "" {
		like := likePattern(f.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(position) LIKE ?", like, like)
	}
	return findPage[models.Employee](q, page, "name ASC", "Services")
}

func (r *CatalogRepository) GetEmployee(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return getByID[models.Employee](ctx, r.db, id, ErrEmployeeNotFound, "Services")
}

// EmployeesForService returns the employees able to perform serviceID.
func (r *CatalogRepository) EmployeesForService(ctx context.Context, serviceID uuid.UUID) ([]models.Employee, error) {
	employees, _, err := r.ListEmployees(ctx, EmployeeFilter{ServiceID: &serviceID}, Page{})
	return employees, err
}

// CreateEmployee inserts e and links it to services.
func (r *CatalogRepository) CreateEmployee(ctx context.Context, e *models.Employee, services []models.Service) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services").Create(e).Error; err != nil {
			return translate(err, "employee already exists")
		}
		if err := tx.Model(e).Association("Services").Replace(services); err != nil {
			return translate(err, "employee already exists")
		}
		e.Services = services
		return nil
	})
}

// UpdateEmployee saves e; a nil services slice leaves the service set untouched.
func (r *CatalogRepository) UpdateEmployee(ctx context.Context, e *models.Employee, services []models.Service) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(e).Omit("Services").
			Select("Name", "Position", "Photo").
			Updates(e).Error
		if err != nil {
			return translate(err, "employee already exists")
		}
		if services != nil {
			if err := tx.Model(e).Association("Services").Replace(services); err != nil {
				return err
			}
			e.Services = services
		}
		return nil
	})
}

func (r *CatalogRepository) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e := models.Employee{ID: id}
		if err := tx.Model(&e).Association("Services").Clear(); err != nil {
			return err
		}
		return deleteByID[models.Employee](ctx, tx, id, ErrEmployeeNotFound)
	})
}

// Products

func (r *CatalogRepository) ListProducts(ctx context.Context, f ProductFilter, page Page) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(f.Search))
	}
	return findPage[models.Product](q, page, "name ASC", "Category")
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return getByID[models.Product](ctx, r.db, id, ErrProductNotFound, "Category")
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Omit("Category").Create(p).Error, "product already exists")
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	err := r.db.WithContext(ctx).Model(p).
		Select("CategoryID", "Name", "Description", "Price").
		Updates(p).Error
	return translate(err, "product already exists")
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Product](ctx, r.db, id, ErrProductNotFound)
}
