package service

import (
	"strings"

	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID    uint
	Title         string
	Description   string
	Price         models.Money
	DiscountPrice *models.Money
	Stock         *int
	Images        []string
	Colors        []string
	Sizes         []string
	Featured      *bool
	Status        string
}

// PublicListQuery 公开商品列表查询条件
type PublicListQuery struct {
	Page         int
	PageSize     int
	CategoryName string
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	Featured     *bool
	SortBy       string
	SortDesc     bool
}

// ListPublic 获取公开商品列表（仅上架商品）
func (s *ProductService) ListPublic(query PublicListQuery) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         query.Page,
		PageSize:     query.PageSize,
		CategoryName: query.CategoryName,
		Search:       query.Search,
		MinPrice:     query.MinPrice,
		MaxPrice:     query.MaxPrice,
		Featured:     query.Featured,
		SortBy:       query.SortBy,
		SortDesc:     query.SortDesc,
		OnlyActive:   true,
		WithCategory: true,
	}
	return s.repo.List(filter)
}

// GetPublic 获取公开商品详情，仅上架商品可见
func (s *ProductService) GetPublic(id uint) (*models.Product, error) {
	product, err := s.repo.GetActiveByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin 获取后台商品列表（含下架，不含已删除）
func (s *ProductService) ListAdmin(categoryID uint, search, status string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		Status:       normalizeProductStatus(status),
		WithCategory: true,
	}
	return s.repo.List(filter)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	featured := false
	if input.Featured != nil {
		featured = *input.Featured
	}
	status := normalizeProductStatus(input.Status)
	if status == "" {
		status = constants.ProductStatusActive
	}

	product := models.Product{
		CategoryID:    input.CategoryID,
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Stock:         stock,
		Images:        models.StringArray(input.Images),
		Colors:        models.StringArray(input.Colors),
		Sizes:         models.StringArray(input.Sizes),
		Featured:      featured,
		Status:        status,
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	if input.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	product.CategoryID = input.CategoryID
	product.Title = strings.TrimSpace(input.Title)
	product.Description = input.Description
	product.Price = input.Price
	product.DiscountPrice = input.DiscountPrice
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidParams
		}
		product.Stock = *input.Stock
	}
	product.Images = models.StringArray(input.Images)
	product.Colors = models.StringArray(input.Colors)
	product.Sizes = models.StringArray(input.Sizes)
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	if status := normalizeProductStatus(input.Status); status != "" {
		product.Status = status
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品（置为 deleted 状态，保留历史订单引用）
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.UpdateStatus(id, constants.ProductStatusDeleted)
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrInvalidParams
	}
	if input.CategoryID == 0 {
		return ErrInvalidParams
	}
	if input.Price.Decimal.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidParams
	}
	if input.DiscountPrice != nil {
		if input.DiscountPrice.Decimal.LessThanOrEqual(decimal.Zero) ||
			input.DiscountPrice.Decimal.GreaterThanOrEqual(input.Price.Decimal) {
			return ErrInvalidParams
		}
	}
	if input.Stock != nil && *input.Stock < 0 {
		return ErrInvalidParams
	}
	return nil
}

func normalizeProductStatus(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case constants.ProductStatusActive, constants.ProductStatusInactive:
		return value
	default:
		return ""
	}
}
