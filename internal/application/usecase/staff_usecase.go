package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StaffUseCase registro de empleados.
type StaffUseCase struct {
	repo  repository.StaffRepository
	phone PhoneNormalizer
	log   zerolog.Logger
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(repo repository.StaffRepository, phone PhoneNormalizer, log zerolog.Logger) *StaffUseCase {
	return &StaffUseCase{repo: repo, phone: phone, log: log}
}

// Create registra un empleado. El código de staff es único (ErrDuplicate).
func (uc *StaffUseCase) Create(ctx context.Context, in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if in.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: hourly_rate no puede ser negativo", domain.ErrInvalidInput)
	}
	phone, err := normalizePhone(uc.phone, strings.TrimSpace(in.Phone))
	if err != nil {
		return nil, err
	}
	var dob *time.Time
	if in.DateOfBirth != "" {
		t, err := time.Parse(dto.DateLayout, in.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: date_of_birth", domain.ErrInvalidInput)
		}
		dob = &t
	}
	now := time.Now()
	staff := &entity.Staff{
		ID:              uuid.New().String(),
		StaffCode:       strings.ToUpper(strings.TrimSpace(in.StaffCode)),
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:           phone,
		Gender:          in.Gender,
		DateOfBirth:     dob,
		Department:      in.Department,
		Role:            in.Role,
		AppointmentType: in.AppointmentType,
		BankName:        in.BankName,
		AccountNumber:   in.AccountNumber,
		Address:         in.Address,
		HourlyRate:      in.HourlyRate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	uc.log.Info().Str("staff_id", staff.ID).Str("staff_code", staff.StaffCode).Msg("staff registrado")
	return ToStaffResponse(staff), nil
}

// GetByID obtiene un empleado. Devuelve ErrStaffNotFound si no existe.
func (uc *StaffUseCase) GetByID(ctx context.Context, id string) (*dto.StaffResponse, error) {
	staff, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, domain.ErrStaffNotFound
	}
	return ToStaffResponse(staff), nil
}

// List lista empleados ordenados por nombre.
func (uc *StaffUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.StaffResponse, error) {
	if page.Limit <= 0 {
		page.Limit = 500
	}
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToStaffResponse(s))
	}
	return out, nil
}

// ToStaffResponse mapea la entidad a su DTO.
func ToStaffResponse(s *entity.Staff) *dto.StaffResponse {
	if s == nil {
		return nil
	}
	out := &dto.StaffResponse{
		ID:              s.ID,
		StaffCode:       s.StaffCode,
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		Gender:          s.Gender,
		Department:      s.Department,
		Role:            s.Role,
		AppointmentType: s.AppointmentType,
		BankName:        s.BankName,
		AccountNumber:   s.AccountNumber,
		Address:         s.Address,
		HourlyRate:      s.HourlyRate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.DateOfBirth != nil {
		out.DateOfBirth = s.DateOfBirth.Format(dto.DateLayout)
	}
	return out
}
