package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetActiveByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	UpdateStatus(id uint, status string) error
	DecrementStock(productID uint, quantity int) (int64, error)
	IncrementStock(productID uint, quantity int) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("products.status = ?", constants.ProductStatusActive)
	} else if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("products.status = ?", status)
	} else {
		query = query.Where("products.status <> ?", constants.ProductStatusDeleted)
	}
	if filter.CategoryID > 0 {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if name := strings.TrimSpace(filter.CategoryName); name != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", name)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildSearchCondition(r.db, []string{"products.title", "products.description"})
		query = query.Where("("+condition+")", repeatLikeArgs("%"+search+"%", argCount)...)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.Featured != nil {
		query = query.Where("products.featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order(buildProductOrderClause(filter.SortBy, filter.SortDesc)).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// buildProductOrderClause 仅允许白名单内的排序字段，兜底按创建时间倒序
func buildProductOrderClause(sortBy string, desc bool) string {
	column := ""
	for _, allowed := range constants.ProductSortColumns {
		if allowed == strings.TrimSpace(sortBy) {
			column = allowed
			break
		}
	}
	if column == "" {
		return "products.created_at DESC"
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return fmt.Sprintf("products.%s %s", column, direction)
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetActiveByID 根据 ID 获取上架商品
func (r *GormProductRepository) GetActiveByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").
		Where("status = ?", constants.ProductStatusActive).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// UpdateStatus 更新商品状态
func (r *GormProductRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("status", status).Error
}

// DecrementStock 条件扣减库存，库存不足时不更新任何行
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementStock 回补库存
func (r *GormProductRepository) IncrementStock(productID uint, quantity int) error {
	if productID == 0 || quantity <= 0 {
		return errors.New("invalid stock increment params")
	}
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}
