package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ummahhub/ummah-backend/internal/model"
	"github.com/ummahhub/ummah-backend/internal/repository"
)

var reportTargets = map[string]struct{}{
	"post":         {},
	"space":        {},
	"profile":      {},
	"review":       {},
	"conversation": {},
}

type ReportService interface {
	Submit(ctx context.Context, reporterUID, targetType, targetID, reason string) (*model.Report, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) Submit(ctx context.Context, reporterUID, targetType, targetID, reason string) (*model.Report, error) {
	targetType = strings.TrimSpace(targetType)
	targetID = strings.TrimSpace(targetID)
	reason = strings.TrimSpace(reason)
	if _, ok := reportTargets[targetType]; !ok {
		return nil, errors.New("unknown target type")
	}
	if targetID == "" {
		return nil, errors.New("targetId is required")
	}
	if reason == "" {
		return nil, errors.New("reason is required")
	}
	report := &model.Report{
		ReporterUID: reporterUID,
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      reason,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
