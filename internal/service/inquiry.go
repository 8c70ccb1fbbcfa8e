package service

import (
	"context"
	"time"

	"github.com/atinyakov/AdmissionDesk/internal/apperrors"
	"github.com/atinyakov/AdmissionDesk/internal/export"
	"github.com/atinyakov/AdmissionDesk/internal/models"
	"github.com/google/uuid"
)

// InquiryRepository defines the persistence operations needed by the InquiryService.
type InquiryRepository interface {
	// CreateInquiry stores a single inquiry.
	CreateInquiry(ctx context.Context, in models.Inquiry) error
	// ListInquiries returns every stored inquiry in insertion order.
	ListInquiries(ctx context.Context) ([]models.Inquiry, error)
}

// InquiryService accepts, lists and exports admission inquiries.
type InquiryService struct {
	repo  InquiryRepository
	now   func() time.Time
	newID func() string
}

// NewInquiryService constructs an InquiryService over repo.
func NewInquiryService(repo InquiryRepository) *InquiryService {
	return &InquiryService{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Submit assigns an ID and timestamp to in and stores it.
// The stored inquiry is returned.
func (s *InquiryService) Submit(ctx context.Context, in models.Inquiry) (models.Inquiry, error) {
	in.ID = s.newID()
	in.CreatedAt = s.now().UTC()
	if err := s.repo.CreateInquiry(ctx, in); err != nil {
		return models.Inquiry{}, apperrors.Storage("submit inquiry", err)
	}
	return in, nil
}

// List returns every inquiry unchanged, in storage order.
func (s *InquiryService) List(ctx context.Context) ([]models.Inquiry, error) {
	inquiries, err := s.repo.ListInquiries(ctx)
	if err != nil {
		return nil, apperrors.Storage("list inquiries", err)
	}
	if inquiries == nil {
		inquiries = []models.Inquiry{}
	}
	return inquiries, nil
}

// Export renders every inquiry as an xlsx workbook.
// Nothing is returned unless the whole workbook was built.
func (s *InquiryService) Export(ctx context.Context) ([]byte, error) {
	inquiries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return export.Inquiries(inquiries)
}
