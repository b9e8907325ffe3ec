// Package attendance implementa el registro de entrada/salida del personal y sus consultas.
package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/domain"
	domatt "github.com/astrobsm/ivanstamas-api/internal/domain/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RecordInput datos de una marcación.
type RecordInput struct {
	StaffID                string
	Action                 string
	AuthMethod             string
	FingerprintVerified    bool
	VerificationConfidence *float64
	DeviceInfo             string
}

// Recorder registra marcaciones IN/OUT. Todas las marcaciones de un staff se serializan
// con el StaffLocker y el bloqueo de la fila del staff dentro de la transacción.
type Recorder struct {
	tx     TxRunner
	locker StaffLocker
	policy domatt.Policy
	now    func() time.Time
	log    zerolog.Logger
}

// NewRecorder construye el caso de uso.
func NewRecorder(tx TxRunner, locker StaffLocker, policy domatt.Policy, log zerolog.Logger) *Recorder {
	return &Recorder{tx: tx, locker: locker, policy: policy, now: time.Now, log: log}
}

// WithClock reemplaza el reloj (tests).
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

// Record aplica la marcación y devuelve la jornada resultante y un mensaje para el cliente.
func (r *Recorder) Record(ctx context.Context, in RecordInput) (*entity.AttendanceRecord, string, error) {
	in.StaffID = strings.TrimSpace(in.StaffID)
	in.Action = strings.ToUpper(strings.TrimSpace(in.Action))
	if err := validateInput(&in); err != nil {
		return nil, "", err
	}

	unlock, err := r.locker.Lock(ctx, in.StaffID)
	if err != nil {
		return nil, "", err
	}
	defer unlock()

	var (
		rec     *entity.AttendanceRecord
		message string
	)
	err = r.tx.RunAttendance(ctx, func(staffRepo repository.StaffRepository, attRepo repository.AttendanceRepository) error {
		staff, err := staffRepo.GetForUpdate(ctx, in.StaffID)
		if err != nil {
			return err
		}
		if staff == nil {
			return domain.ErrStaffNotFound
		}
		open, err := attRepo.GetOpenByStaff(ctx, in.StaffID)
		if err != nil {
			return err
		}
		now := r.now().UTC()

		switch in.Action {
		case entity.AttendanceActionIn:
			if open != nil {
				return domain.ErrAlreadyClockedIn
			}
			rec = &entity.AttendanceRecord{
				ID:                     uuid.New().String(),
				StaffID:                staff.ID,
				Date:                   r.policy.WorkDate(now),
				TimeIn:                 &now,
				Action:                 entity.AttendanceActionIn,
				Status:                 r.policy.ClockInStatus(now),
				AuthMethod:             in.AuthMethod,
				FingerprintVerified:    in.FingerprintVerified,
				VerificationConfidence: in.VerificationConfidence,
				DeviceInfo:             in.DeviceInfo,
				CreatedAt:              now,
				UpdatedAt:              now,
			}
			if err := attRepo.Create(ctx, rec); err != nil {
				return err
			}
			message = fmt.Sprintf("Clock-in recorded for %s", staff.Name)
		default:
			if open == nil {
				return domain.ErrNoOpenAttendance
			}
			if err := r.policy.ClockOut(open, now); err != nil {
				return err
			}
			open.AuthMethod = in.AuthMethod
			open.FingerprintVerified = open.FingerprintVerified || in.FingerprintVerified
			if in.VerificationConfidence != nil {
				open.VerificationConfidence = in.VerificationConfidence
			}
			if in.DeviceInfo != "" {
				open.DeviceInfo = in.DeviceInfo
			}
			if err := attRepo.Update(ctx, open); err != nil {
				return err
			}
			rec = open
			message = fmt.Sprintf("Clock-out recorded for %s (%.2f hours)", staff.Name, *open.HoursWorked)
		}
		rec.StaffName = staff.Name
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	r.log.Info().
		Str("staff_id", rec.StaffID).
		Str("action", in.Action).
		Str("status", rec.Status).
		Str("auth_method", rec.AuthMethod).
		Msg("asistencia registrada")
	return rec, message, nil
}

func validateInput(in *RecordInput) error {
	if in.StaffID == "" {
		return fmt.Errorf("%w: staff_id es requerido", domain.ErrInvalidInput)
	}
	if in.Action != entity.AttendanceActionIn && in.Action != entity.AttendanceActionOut {
		return fmt.Errorf("%w: action debe ser IN u OUT", domain.ErrInvalidInput)
	}
	switch in.AuthMethod {
	case "":
		in.AuthMethod = entity.AuthMethodManual
	case entity.AuthMethodManual, entity.AuthMethodFingerprint, entity.AuthMethodWebAuthn:
	default:
		return fmt.Errorf("%w: auth_method %q", domain.ErrInvalidInput, in.AuthMethod)
	}
	if c := in.VerificationConfidence; c != nil && (*c < 0 || *c > 1) {
		return fmt.Errorf("%w: verification_confidence fuera de [0, 1]", domain.ErrInvalidInput)
	}
	return nil
}
