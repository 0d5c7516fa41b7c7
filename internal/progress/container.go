package progress

import "gorm.io/gorm"

type Container struct {
	Handler *Handler
	Service Service
	Repo    Repository
}

func NewContainer(db *gorm.DB) (*Container, error) {
	repo := NewRepository(db)
	service, err := NewService(repo)
	if err != nil {
		return nil, err
	}
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}, nil
}
