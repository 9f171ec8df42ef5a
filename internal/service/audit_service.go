package service

import (
	"context"
	"fmt"

	"attendance/internal/model"
	"attendance/internal/rbac"
	"attendance/internal/repository"
)

type AuditLogResponse struct {
	LogID      uint   `json:"logid"`
	UserID     string `json:"userid"`
	FullName   string `json:"fullname"`
	ActionType string `json:"actiontype"`
	Entity     string `json:"tablename"`
	RecordID   string `json:"recordid"`
	OldValue   string `json:"oldvalue,omitempty"`
	NewValue   string `json:"newvalue,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	CreatedAt  string `json:"createdat"`
}

// AuditService exposes the tenant's change trail to administrators.
type AuditService interface {
	List(ctx context.Context, caller *model.User, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, caller *model.User, page, limit int) ([]AuditLogResponse, int64, error) {
	scope, err := callerScope(caller)
	if err != nil {
		return nil, 0, err
	}
	if !rbac.Evaluate(rbac.ParseRole(caller.Role)).CanManageSettings {
		return nil, 0, fmt.Errorf("%w: view audit log", ErrForbidden)
	}

	logs, total, err := s.repo.List(ctx, scope, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		fullName := "System"
		userID := ""
		if l.User != nil {
			fullName = l.User.FullName
		}
		if l.UserID != nil {
			userID = l.UserID.String()
		}
		res = append(res, AuditLogResponse{
			LogID:      l.LogID,
			UserID:     userID,
			FullName:   fullName,
			ActionType: l.ActionType,
			Entity:     l.Entity,
			RecordID:   l.RecordID,
			OldValue:   l.OldValue,
			NewValue:   l.NewValue,
			Remarks:    l.Remarks,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return res, total, nil
}
