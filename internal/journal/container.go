package journal

import "gorm.io/gorm"

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(db *gorm.DB, ledger Ledger) (*Container, error) {
	repo := NewRepository(db)
	service, err := NewService(repo, ledger)
	if err != nil {
		return nil, err
	}
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}, nil
}
