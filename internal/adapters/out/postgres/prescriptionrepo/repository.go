package prescriptionrepo

import (
	"context"
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/prescription"
	"pharmacy/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPrescriptionRepository implements PrescriptionRepository using GORM.
type GormPrescriptionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPrescriptionRepository creates a new GORM prescription repository.
func NewGormPrescriptionRepository(db *gorm.DB, tracker aggregateTracker) *GormPrescriptionRepository {
	return &GormPrescriptionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly uploaded prescription to the database.
func (r *GormPrescriptionRepository) Add(ctx context.Context, aggregate *prescription.Prescription) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a review decision or replacement upload.
func (r *GormPrescriptionRepository) Update(ctx context.Context, aggregate *prescription.Prescription) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PrescriptionDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"file_ref":         dto.FileRef,
			"status":           dto.Status,
			"rejection_reason": dto.RejectionReason,
			"reviewed_by":      dto.ReviewedBy,
			"reviewed_at":      dto.ReviewedAt,
			"order_id":         dto.OrderID,
			"uploaded_at":      dto.UploadedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("prescription", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a prescription by ID.
func (r *GormPrescriptionRepository) Get(ctx context.Context, id kernel.UUID) (*prescription.Prescription, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PrescriptionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("prescription", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves the pharmacist review queue, oldest upload first.
func (r *GormPrescriptionRepository) GetAllPending(ctx context.Context) ([]*prescription.Prescription, error) {
	var dtos []PrescriptionDTO
	err := r.db.WithContext(ctx).
		Order("uploaded_at").
		Find(&dtos, "status = ?", int(prescription.Pending)).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByCustomer retrieves a customer's prescriptions, newest upload first.
func (r *GormPrescriptionRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*prescription.Prescription, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PrescriptionDTO
	err := r.db.WithContext(ctx).
		Order("uploaded_at DESC").
		Find(&dtos, "customer_id = ?", customerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []PrescriptionDTO) ([]*prescription.Prescription, error) {
	prescriptions := make([]*prescription.Prescription, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}

	return prescriptions, nil
}
