package journal

import "gorm.io/gorm"

type Repository interface {
	List() ([]Entry, error)
	Insert(e *Entry) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List() ([]Entry, error) {
	var entries []Entry
	if err := r.db.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) Insert(e *Entry) error {
	return r.db.Create(e).Error
}
