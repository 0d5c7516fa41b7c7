package progress

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Load() (*Progress, error)
	Upsert(p *Progress) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Load returns the stored aggregate, or nil when nothing was persisted yet.
func (r *repository) Load() (*Progress, error) {
	var p Progress
	if err := r.db.First(&p, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Upsert(p *Progress) error {
	p.ID = 1
	return r.db.Save(p).Error
}
