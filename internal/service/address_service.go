package service

import (
	"strings"

	"github.com/aurora-mall/internal/models"
	"github.com/aurora-mall/internal/repository"

	"gorm.io/gorm"
)

// AddressService 收货地址服务
type AddressService struct {
	repo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// AddressInput 创建/更新地址输入
type AddressInput struct {
	Name      string
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	IsDefault bool
}

func validateAddressInput(input AddressInput) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Street) == "" ||
		strings.TrimSpace(input.City) == "" ||
		strings.TrimSpace(input.Country) == "" {
		return ErrInvalidParams
	}
	return nil
}

// ListByUser 获取用户地址列表
func (s *AddressService) ListByUser(userID uint) ([]models.Address, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	return s.repo.ListByUser(userID)
}

// Create 创建地址；设为默认时在同一事务内先清除旧默认
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrInvalidParams
	}
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}

	address := &models.Address{
		UserID:    userID,
		Name:      strings.TrimSpace(input.Name),
		Street:    strings.TrimSpace(input.Street),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		ZipCode:   strings.TrimSpace(input.ZipCode),
		Country:   strings.TrimSpace(input.Country),
		IsDefault: input.IsDefault,
	}

	err := s.repo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if input.IsDefault {
			if err := txRepo.ClearDefault(userID); err != nil {
				return err
			}
		}
		return txRepo.Create(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址；设为默认时在同一事务内先清除旧默认
func (s *AddressService) Update(userID, id uint, input AddressInput) (*models.Address, error) {
	if userID == 0 || id == 0 {
		return nil, ErrInvalidParams
	}
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	address, err := s.repo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	address.Name = strings.TrimSpace(input.Name)
	address.Street = strings.TrimSpace(input.Street)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.ZipCode = strings.TrimSpace(input.ZipCode)
	address.Country = strings.TrimSpace(input.Country)

	err = s.repo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if input.IsDefault && !address.IsDefault {
			if err := txRepo.ClearDefault(userID); err != nil {
				return err
			}
		}
		address.IsDefault = input.IsDefault
		return txRepo.Update(address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除地址
func (s *AddressService) Delete(userID, id uint) error {
	if userID == 0 || id == 0 {
		return ErrInvalidParams
	}
	affected, err := s.repo.Delete(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}
