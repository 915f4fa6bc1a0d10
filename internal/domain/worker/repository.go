package worker

import "context"

type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	List(ctx context.Context, activeOnly bool) ([]Worker, error)
	GetActive(ctx context.Context) ([]Worker, error)
}
