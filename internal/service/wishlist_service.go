package service

import (
	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// ListByUser 获取用户心愿单
func (s *WishlistService) ListByUser(userID uint) ([]models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	return s.wishlistRepo.ListByUser(userID)
}

// AddItem 加入心愿单，重复加入直接返回已有项
func (s *WishlistService) AddItem(userID, productID uint) (*models.WishlistItem, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidParams
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !productPurchasable(product) {
		return nil, ErrProductNotFound
	}

	existing, err := s.wishlistRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 从心愿单移除商品
func (s *WishlistService) RemoveItem(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidParams
	}
	affected, err := s.wishlistRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}
