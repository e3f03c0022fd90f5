package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrAddressNotFound 地址不存在或不屬於該用戶
	ErrAddressNotFound = errors.New("address not found")
)

type AddressRepo struct {
	db *DbDao
}

func NewAddressRepo(db *DbDao) *AddressRepo {
	return &AddressRepo{db: db}
}

// Create - 創建地址
func (s *AddressRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	return s.db.WithContext(ctx).Create(address).Error
}

// Read - 根據ID查詢地址，查詢範圍限定該用戶
func (s *AddressRepo) GetAddressByID(ctx context.Context, userID int, addressID uint) (*model.Address, error) {
	var address model.Address
	err := s.db.WithContext(ctx).
		Where("address_id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &address, nil
}

// GetAddressByIDTx 在既有交易內查詢地址，查詢範圍限定該用戶
func (s *AddressRepo) GetAddressByIDTx(tx *gorm.DB, userID int, addressID uint) (*model.Address, error) {
	var address model.Address
	err := tx.Where("address_id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &address, nil
}

// Read - 查詢用戶所有地址
func (s *AddressRepo) GetAddressesByUserID(ctx context.Context, userID int) ([]model.Address, error) {
	var addresses []model.Address
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&addresses).Error
	return addresses, err
}

// Delete - 軟刪除地址
func (s *AddressRepo) DeleteAddress(ctx context.Context, userID int, addressID uint) error {
	return s.db.WithContext(ctx).
		Where("address_id = ? AND user_id = ?", addressID, userID).
		Delete(&model.Address{}).Error
}
