package service

import (
	"time"

	"listen/internal/repository"

	"github.com/rs/zerolog/log"
)

type ReportService struct {
	saleRepo     *repository.SaleRepository
	purchaseRepo *repository.PurchaseRepository
	notifier     *NotificationService
}

func NewReportService(saleRepo *repository.SaleRepository, purchaseRepo *repository.PurchaseRepository,
	notifier *NotificationService) *ReportService {
	return &ReportService{saleRepo: saleRepo, purchaseRepo: purchaseRepo, notifier: notifier}
}

func (s *ReportService) SalesReport(from, to time.Time) (*repository.SalesSummary, error) {
	sum, err := s.saleRepo.Summarize(from, to)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.NotifyReportGenerated("Sales"); err != nil {
		log.Warn().Err(err).Msg("report notification failed")
	}
	return sum, nil
}

func (s *ReportService) PurchasesReport(from, to time.Time) (*repository.PurchaseSummary, error) {
	sum, err := s.purchaseRepo.Summarize(from, to)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.NotifyReportGenerated("Purchases"); err != nil {
		log.Warn().Err(err).Msg("report notification failed")
	}
	return sum, nil
}
