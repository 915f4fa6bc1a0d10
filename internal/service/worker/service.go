package worker

import (
	"context"

	"github.com/ladangworks/estate-backend-go/internal/domain/deduction"
	"github.com/ladangworks/estate-backend-go/internal/domain/worker"
	"github.com/ladangworks/estate-backend-go/internal/pkg/database"
)

type WorkerServiceImpl struct {
	db         *database.DB
	workerRepo worker.WorkerRepository
}

func NewWorkerService(db *database.DB, workerRepo worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{db: db, workerRepo: workerRepo}
}

func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	created, err := s.workerRepo.Create(ctx, worker.Worker{
		Code:          req.Code,
		Name:          req.Name,
		Nationality:   deduction.NationalityClass(req.Nationality),
		MonthlySalary: req.MonthlySalary,
		IsActive:      true,
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return mapToWorkerResponse(created), nil
}

func (s *WorkerServiceImpl) GetByID(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return mapToWorkerResponse(w), nil
}

func (s *WorkerServiceImpl) List(ctx context.Context, activeOnly bool) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		result = append(result, mapToWorkerResponse(w))
	}
	return result, nil
}

func mapToWorkerResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:            w.ID,
		Code:          w.Code,
		Name:          w.Name,
		Nationality:   string(w.Nationality),
		MonthlySalary: w.MonthlySalary,
		IsActive:      w.IsActive,
	}
}
