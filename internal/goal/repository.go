package goal

import "gorm.io/gorm"

type Repository interface {
	List() ([]Goal, error)
	Save(g *Goal) error
	Delete(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List() ([]Goal, error) {
	var goals []Goal
	if err := r.db.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *repository) Save(g *Goal) error {
	return r.db.Save(g).Error
}

func (r *repository) Delete(id uint) error {
	return r.db.Delete(&Goal{}, "id = ?", id).Error
}
