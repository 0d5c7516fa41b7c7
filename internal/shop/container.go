package shop

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(ledger Ledger) *Container {
	service := NewService(ledger)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
