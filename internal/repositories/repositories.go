package repositories

import (
	"time"

	"gorm.io/gorm"

	"inventory/internal/models"
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	GetByID(db *gorm.DB, id string) (*models.User, error)
	Exists(db *gorm.DB, id string) (bool, error)
	NameTaken(db *gorm.DB, first, last, excludeID string) (bool, error)
	EmailTaken(db *gorm.DB, email, excludeID string) (bool, error)
	Update(db *gorm.DB, user *models.User) error
	Delete(db *gorm.DB, id string) error
}

type ManufacturerRepository interface {
	Create(db *gorm.DB, mfr *models.Manufacturer) error
	GetByID(db *gorm.DB, id int) (*models.Manufacturer, error)
	GetByName(db *gorm.DB, name string) (*models.Manufacturer, error)
	List(db *gorm.DB) ([]models.Manufacturer, error)
	UpdateName(db *gorm.DB, id int, name string) error
	SetPartCount(db *gorm.DB, id int, count int) error
	Delete(db *gorm.DB, id int) error
}

type PartRepository interface {
	Create(db *gorm.DB, part *models.Part) error
	GetByUPC(db *gorm.DB, upc string) (*models.Part, error)
	Exists(db *gorm.DB, upc string) (bool, error)
	CountByManufacturer(db *gorm.DB, mfrID int) (int64, error)
	PlacementTaken(db *gorm.DB, placement, excludeUPC string) (bool, error)
	Update(db *gorm.DB, part *models.Part) error
	Delete(db *gorm.DB, upc string) error
	TransferManufacturer(db *gorm.DB, oldMfrID, newMfrID int) error
}

type CheckoutRepository interface {
	Create(db *gorm.DB, checkout *models.Checkout) error
	GetByPart(db *gorm.DB, upc string) (*models.Checkout, error)
	UpdateHolder(db *gorm.DB, upc, userID string, at time.Time) error
	DeleteByPart(db *gorm.DB, upc string) error
	ListByUser(db *gorm.DB, userID string) ([]models.Checkout, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
}

// concrete implementations

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if db == nil {
		db = r.db
	}
	return db.Create(user).Error
}

func (r *userRepository) GetByID(db *gorm.DB, id string) (*models.User, error) {
	if db == nil {
		db = r.db
	}
	var user models.User
	if err := db.First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(db *gorm.DB, id string) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.User{}).Where("user_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) NameTaken(db *gorm.DB, first, last, excludeID string) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.User{}).
		Where("first_name = ? AND last_name = ? AND user_id <> ?", first, last, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) EmailTaken(db *gorm.DB, email, excludeID string) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.User{}).
		Where("email = ? AND user_id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
		}).Error
}

func (r *userRepository) Delete(db *gorm.DB, id string) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.User{}, "user_id = ?", id).Error
}

type manufacturerRepository struct {
	db *gorm.DB
}

func NewManufacturerRepository(db *gorm.DB) ManufacturerRepository {
	return &manufacturerRepository{db: db}
}

func (r *manufacturerRepository) Create(db *gorm.DB, mfr *models.Manufacturer) error {
	if db == nil {
		db = r.db
	}
	return db.Create(mfr).Error
}

func (r *manufacturerRepository) GetByID(db *gorm.DB, id int) (*models.Manufacturer, error) {
	if db == nil {
		db = r.db
	}
	var mfr models.Manufacturer
	if err := db.First(&mfr, "mfr_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mfr, nil
}

func (r *manufacturerRepository) GetByName(db *gorm.DB, name string) (*models.Manufacturer, error) {
	if db == nil {
		db = r.db
	}
	var mfr models.Manufacturer
	if err := db.First(&mfr, "mfr_name = ?", name).Error; err != nil {
		return nil, err
	}
	return &mfr, nil
}

func (r *manufacturerRepository) List(db *gorm.DB) ([]models.Manufacturer, error) {
	if db == nil {
		db = r.db
	}
	var mfrs []models.Manufacturer
	if err := db.Find(&mfrs).Error; err != nil {
		return nil, err
	}
	return mfrs, nil
}

func (r *manufacturerRepository) UpdateName(db *gorm.DB, id int, name string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Manufacturer{}).
		Where("mfr_id = ?", id).
		Update("mfr_name", name).
		Error
}

func (r *manufacturerRepository) SetPartCount(db *gorm.DB, id int, count int) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Manufacturer{}).
		Where("mfr_id = ?", id).
		Update("number_of_parts", count).
		Error
}

func (r *manufacturerRepository) Delete(db *gorm.DB, id int) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Manufacturer{}, "mfr_id = ?", id).Error
}

type partRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) Create(db *gorm.DB, part *models.Part) error {
	if db == nil {
		db = r.db
	}
	return db.Create(part).Error
}

func (r *partRepository) GetByUPC(db *gorm.DB, upc string) (*models.Part, error) {
	if db == nil {
		db = r.db
	}
	var part models.Part
	if err := db.Preload("Manufacturer").First(&part, "part_upc = ?", upc).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) Exists(db *gorm.DB, upc string) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Part{}).Where("part_upc = ?", upc).Count(&count).Error
	return count > 0, err
}

func (r *partRepository) CountByManufacturer(db *gorm.DB, mfrID int) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Part{}).Where("mfr_id = ?", mfrID).Count(&count).Error
	return count, err
}

func (r *partRepository) PlacementTaken(db *gorm.DB, placement, excludeUPC string) (bool, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Part{}).
		Where("placement = ? AND part_upc <> ?", placement, excludeUPC).
		Count(&count).Error
	return count > 0, err
}

// Update rewrites every editable column. part_upc and date_added are immutable.
func (r *partRepository) Update(db *gorm.DB, part *models.Part) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Part{}).
		Where("part_upc = ?", part.PartUPC).
		Updates(map[string]interface{}{
			"placement":   part.Placement,
			"mfr_pn":      part.MfrPN,
			"mfr_id":      part.MfrID,
			"description": part.Description,
			"url":         part.URL,
			"quantity":    part.Quantity,
		}).Error
}

func (r *partRepository) Delete(db *gorm.DB, upc string) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Part{}, "part_upc = ?", upc).Error
}

func (r *partRepository) TransferManufacturer(db *gorm.DB, oldMfrID, newMfrID int) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Part{}).
		Where("mfr_id = ?", oldMfrID).
		Update("mfr_id", newMfrID).
		Error
}

type checkoutRepository struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepository{db: db}
}

func (r *checkoutRepository) Create(db *gorm.DB, checkout *models.Checkout) error {
	if db == nil {
		db = r.db
	}
	return db.Create(checkout).Error
}

func (r *checkoutRepository) GetByPart(db *gorm.DB, upc string) (*models.Checkout, error) {
	if db == nil {
		db = r.db
	}
	var checkout models.Checkout
	if err := db.First(&checkout, "checked_out_part = ?", upc).Error; err != nil {
		return nil, err
	}
	return &checkout, nil
}

// UpdateHolder reassigns an open checkout in place: same row, new holder and
// timestamp. There is never a delete+insert during a forced transfer.
func (r *checkoutRepository) UpdateHolder(db *gorm.DB, upc, userID string, at time.Time) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Checkout{}).
		Where("checked_out_part = ?", upc).
		Updates(map[string]interface{}{
			"current_holder":     userID,
			"checkout_timestamp": at,
		}).Error
}

func (r *checkoutRepository) DeleteByPart(db *gorm.DB, upc string) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Checkout{}, "checked_out_part = ?", upc).Error
}

func (r *checkoutRepository) ListByUser(db *gorm.DB, userID string) ([]models.Checkout, error) {
	if db == nil {
		db = r.db
	}
	var checkouts []models.Checkout
	if err := db.Where("current_holder = ?", userID).
		Order("checkout_timestamp ASC").
		Find(&checkouts).Error; err != nil {
		return nil, err
	}
	return checkouts, nil
}

func (r *checkoutRepository) CountByUser(db *gorm.DB, userID string) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&models.Checkout{}).Where("current_holder = ?", userID).Count(&count).Error
	return count, err
}
