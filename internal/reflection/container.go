package reflection

import "time"

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(serviceURL string, timeout time.Duration, goals GoalCreator) *Container {
	provider := NewHTTPProvider(serviceURL, timeout)
	service := NewService(provider, goals)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
