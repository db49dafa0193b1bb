package service

import (
	"strings"

	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	Product   *models.Product `json:"product"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
	Color     string
	Size      string
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车，已下架商品自动移出
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !productPurchasable(product) {
			_ = s.cartRepo.DeleteByIDAndUser(item.ID, userID)
			continue
		}

		details = append(details, CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: product.EffectivePrice(),
			Product:   product,
		})
	}
	return details, nil
}

// AddItem 加入购物车：同（商品、颜色、尺码）合并数量，并校验库存上限
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidParams
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !productPurchasable(product) {
		return nil, ErrProductNotFound
	}

	color := strings.TrimSpace(input.Color)
	size := strings.TrimSpace(input.Size)

	existing, err := s.cartRepo.GetByVariant(input.UserID, input.ProductID, color, size)
	if err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		if err := s.cartRepo.UpdateQuantity(existing.ID, quantity); err != nil {
			return nil, err
		}
		existing.Quantity = quantity
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Color:     color,
		Size:      size,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity 更新购物车项数量
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrInvalidParams
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.cartRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !productPurchasable(product) {
		return nil, ErrProductNotFound
	}
	if quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	if err := s.cartRepo.UpdateQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	if userID == 0 || itemID == 0 {
		return ErrInvalidParams
	}
	item, err := s.cartRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteByIDAndUser(itemID, userID)
}

func productPurchasable(product *models.Product) bool {
	return product != nil && product.Status == constants.ProductStatusActive
}
