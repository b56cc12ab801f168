package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/events"
	"github.com/hostelops/complaints/internal/metrics"
	"github.com/hostelops/complaints/internal/models"
	"github.com/hostelops/complaints/internal/transport"
	"github.com/hostelops/complaints/internal/util"
	"github.com/hostelops/complaints/pkg/logging"
)

type ComplaintRepo interface {
	CreateComplaint(ctx context.Context, c *models.Complaint) (*models.Complaint, error)
	ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id uuid.UUID, status models.Status, at time.Time) (*models.Complaint, error)
	SearchComplaints(ctx context.Context, query string, ownerID *uuid.UUID, offset, limit int) ([]models.Complaint, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

type ComplaintIndexer interface {
	IndexComplaint(ctx context.Context, c *models.Complaint) error
	Search(ctx context.Context, query string, ownerID *uuid.UUID, from, size int) ([]models.Complaint, error)
}

// ComplaintService applies role scoping and the status rules on top of the
// store. Events, Index and Metrics are optional.
type ComplaintService struct {
	Repo    ComplaintRepo
	Events  EventPublisher
	Index   ComplaintIndexer
	Metrics *metrics.Metrics
	Now     func() time.Time
}

func (s *ComplaintService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *ComplaintService) Create(ctx context.Context, who models.Identity, req transport.CreateComplaintRequest) (*models.Complaint, error) {
	l := logging.FromContext(ctx).With("svc", "complaint.create", "user_id", who.UserID)

	if !who.IsStudent() {
		return nil, fmt.Errorf("%w: only students can submit complaints", errs.ErrForbidden)
	}

	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)
	req.Priority = strings.TrimSpace(req.Priority)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	priority, err := models.ParsePriority(req.Priority)
	if err != nil {
		return nil, fmt.Errorf("%w: priority must be one of Low, Medium, High", errs.ErrValidation)
	}

	now := s.now()
	c, err := s.Repo.CreateComplaint(ctx, &models.Complaint{
		UserID:      who.UserID,
		Category:    req.Category,
		Description: req.Description,
		Priority:    priority,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		l.Error("create_complaint_failed", "status", 500, "error", err)
		return nil, err
	}

	s.Metrics.ComplaintCreated(c.Priority)
	s.publish(ctx, c.ID.String(), events.NewComplaintCreated(c))
	s.index(ctx, c)
	l.Info("create_complaint_success", "complaint_id", c.ID)
	return c, nil
}

func (s *ComplaintService) List(ctx context.Context, who models.Identity, q transport.ListComplaintsQuery) ([]models.Complaint, error) {
	if !who.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", errs.ErrForbidden)
	}

	var f models.ComplaintFilter
	if q.Status != "" {
		st, err := models.ParseStatus(q.Status)
		if err != nil {
			// no stored complaint can carry a status outside the closed set
			return []models.Complaint{}, nil
		}
		f.Status = &st
	}
	f.Category = strings.TrimSpace(q.Category)
	if who.IsStudent() {
		owner := who.UserID
		f.OwnerID = &owner
	}

	return s.Repo.ListComplaints(ctx, f)
}

func (s *ComplaintService) UpdateStatus(ctx context.Context, who models.Identity, rawID string, req transport.UpdateStatusRequest) (*models.Complaint, error) {
	l := logging.FromContext(ctx).With("svc", "complaint.update_status", "user_id", who.UserID, "complaint_id", rawID)

	if !who.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can change complaint status", errs.ErrForbidden)
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: status must be one of Pending, In Progress, Resolved", errs.ErrValidation)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: complaint %s", errs.ErrNotFound, rawID)
	}

	c, err := s.Repo.UpdateComplaintStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, err
	}

	s.Metrics.StatusUpdated(c.Status)
	s.publish(ctx, c.ID.String(), events.NewComplaintStatusUpdated(c, who.UserID))
	s.index(ctx, c)
	l.Info("update_status_success", "new_status", c.Status)
	return c, nil
}

// Search matches category and description text, one page at a time. Students
// only see their own complaints. Falls back to the store when no index is configured or the index
// call fails.
func (s *ComplaintService) Search(ctx context.Context, who models.Identity, q transport.SearchComplaintsQuery) ([]models.Complaint, error) {
	l := logging.FromContext(ctx).With("svc", "complaint.search", "user_id", who.UserID)

	if !who.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", errs.ErrForbidden)
	}
	q.Q = strings.TrimSpace(q.Q)
	if err := validateStruct(q); err != nil {
		return nil, err
	}

	var owner *uuid.UUID
	if who.IsStudent() {
		id := who.UserID
		owner = &id
	}

	offset, limit := util.Calculate(q.Page, q.Size)
	if s.Index != nil {
		hits, err := s.Index.Search(ctx, q.Q, owner, offset, limit)
		if err == nil {
			return hits, nil
		}
		l.Warn("index_search_failed", "reason", "falling back to store", "error", err)
	}
	return s.Repo.SearchComplaints(ctx, q.Q, owner, offset, limit)
}

func (s *ComplaintService) publish(ctx context.Context, key string, ev any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, key, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "key", key, "error", err)
	}
}

func (s *ComplaintService) index(ctx context.Context, c *models.Complaint) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexComplaint(ctx, c); err != nil {
		logging.FromContext(ctx).Warn("index_complaint_failed", "complaint_id", c.ID, "error", err)
	}
}
