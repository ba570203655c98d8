package service

import (
	"github.com/sptryogi/tracking-po/internal/model"
	"github.com/sptryogi/tracking-po/internal/repository"
)

type DashboardService interface {
	GetRecords(filter repository.POFilter) ([]model.PORecord, error)
	GetSummary(filter repository.POFilter) (*repository.POSummary, error)
	GetDailyFinancials(filter repository.POFilter) ([]repository.DailyFinancial, error)
}

type dashboardService struct {
	poRepo repository.PORepository
}

func NewDashboardService(poRepo repository.PORepository) DashboardService {
	return &dashboardService{poRepo: poRepo}
}

func (s *dashboardService) GetRecords(filter repository.POFilter) ([]model.PORecord, error) {
	return s.poRepo.FindAll(filter)
}

func (s *dashboardService) GetSummary(filter repository.POFilter) (*repository.POSummary, error) {
	return s.poRepo.Summary(filter)
}

func (s *dashboardService) GetDailyFinancials(filter repository.POFilter) ([]repository.DailyFinancial, error) {
	return s.poRepo.DailyFinancials(filter)
}
