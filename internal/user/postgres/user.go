package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/workflow-approval/internal"
	userDatamodel "github.com/frahmantamala/workflow-approval/internal/core/datamodel/user"
	"github.com/frahmantamala/workflow-approval/internal/user"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(user.ToDataModel(u)).Error
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}

func (r *UserRepository) GetByUsername(username string) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.Where("username = ?", username).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&record), nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var records []*userDatamodel.User
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(records), nil
}

func (r *UserRepository) GetByRole(role string) ([]*user.User, error) {
	var records []*userDatamodel.User
	if err := r.db.Where("role = ?", role).Find(&records).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(records), nil
}

func (r *UserRepository) GetByDepartment(department string) ([]*user.User, error) {
	var records []*userDatamodel.User
	if err := r.db.Where("department = ?", department).Find(&records).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(records), nil
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Save(user.ToDataModel(u)).Error
}

func (r *UserRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
