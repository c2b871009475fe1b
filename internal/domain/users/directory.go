package users

import "gorm.io/gorm"

// Directory is the narrow user-lookup surface the billing layer depends on.
// Email resolution is an indexed query, not a listing scan.
type Directory interface {
	GetByID(id uint) (*User, error)
	GetByEmail(email string) (*User, error)
	GrantRole(id uint, role string) error
}

type gormDirectory struct {
	db *gorm.DB
}

// NewDirectory creates a user directory backed by GORM.
func NewDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) GetByID(id uint) (*User, error) {
	var u User
	if err := d.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *gormDirectory) GetByEmail(email string) (*User, error) {
	var u User
	if err := d.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *gormDirectory) GrantRole(id uint, role string) error {
	return d.db.Model(&User{}).Where("id = ?", id).Update("role", role).Error
}
