package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrobsm/ivanstamas-api/internal/application/attendance"
	"github.com/astrobsm/ivanstamas-api/internal/application/auth"
	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/application/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/application/notification"
	"github.com/astrobsm/ivanstamas-api/internal/application/payroll"
	"github.com/astrobsm/ivanstamas-api/internal/application/usecase"
	domatt "github.com/astrobsm/ivanstamas-api/internal/domain/attendance"
	dominv "github.com/astrobsm/ivanstamas-api/internal/domain/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/excel"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/lock"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/memory"
	"github.com/astrobsm/ivanstamas-api/internal/infrastructure/pdf"
	apphttp "github.com/astrobsm/ivanstamas-api/internal/interfaces/http"
	pkgjwt "github.com/astrobsm/ivanstamas-api/pkg/jwt"
	"github.com/astrobsm/ivanstamas-api/pkg/phone"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type server struct {
	app   *fiber.App
	clock *testClock
}

func newServer(t *testing.T) *server {
	t.Helper()
	log := zerolog.Nop()
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	staff := memory.NewStaffRepository(s)
	att := memory.NewAttendanceRepository(s)
	tx := memory.NewTxRunner(s)
	phones := phone.NewNormalizer("NG")
	exporter := excel.NewExporter()

	policy, err := domatt.NewPolicy("Africa/Lagos", "09:00", 8)
	require.NoError(t, err)
	th, err := dominv.ParseThresholds("0.5")
	require.NoError(t, err)
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)
	clk := &testClock{now: time.Date(2024, 3, 4, 8, 0, 0, 0, lagos)}

	notifications := notification.NewUseCase(memory.NewNotificationRepository(s), users, log)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, staff, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 5, Issuer: testIssuer}, log),
		UserUC:      usecase.NewUserUseCase(users, log),
		StaffUC:     usecase.NewStaffUseCase(staff, phones, log),
		Recorder:    attendance.NewRecorder(tx, lock.NewKeyedMutex(), policy, log).WithClock(clk.Now),
		AttendanceQ: attendance.NewQueryUseCase(staff, att, exporter),
		InventoryUC: inventory.NewItemUseCase(inventory.ItemDeps{
			ItemRepo:      memory.NewInventoryItemRepository(s),
			MovementRepo:  memory.NewInventoryMovementRepository(s),
			WarehouseRepo: memory.NewWarehouseRepository(s),
			Tx:            tx,
			Thresholds:    th,
			Notifier:      notifications,
			Exporter:      exporter,
			Log:           log,
		}),
		WarehouseUC:    usecase.NewWarehouseUseCase(memory.NewWarehouseRepository(s)),
		SupplierUC:     usecase.NewSupplierUseCase(memory.NewSupplierRepository(s), phones),
		CustomerUC:     usecase.NewCustomerUseCase(memory.NewCustomerRepository(s), phones),
		NotificationUC: notifications,
		PayrollUC:      payroll.NewUseCase(memory.NewPayrollRepository(s), staff, att, pdf.NewPayslipGenerator("IVANSTAMAS"), log),
		JWTSecret:      testJWTSecret,
	})
	return &server{app: app, clock: clk}
}

// call ejecuta la petición y decodifica el cuerpo JSON en out (si no es nil).
func (s *server) call(t *testing.T, method, path, authHeader string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func tokenFor(t *testing.T, role, staffID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, staffID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *server) createStaff(t *testing.T, manager, code string) dto.StaffResponse {
	t.Helper()
	var st dto.StaffResponse
	status := s.call(t, http.MethodPost, "/api/v1/staff", manager,
		map[string]any{"staff_code": code, "name": "Ada Obi", "phone": "08031234567", "hourly_rate": "1500"}, &st)
	require.Equal(t, http.StatusCreated, status)
	return st
}

func TestAttendanceFlow(t *testing.T) {
	s := newServer(t)
	manager := tokenFor(t, "manager", "")
	st := s.createStaff(t, manager, "ast-0001")
	assert.Equal(t, "+2348031234567", st.Phone)

	var in dto.RecordAttendanceResponse
	status := s.call(t, http.MethodPost, "/api/v1/attendance", manager, map[string]any{"staff_id": st.ID, "action": "IN"}, &in)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Clock-in recorded for Ada Obi", in.Message)
	assert.Equal(t, "IN", in.Record.Action)

	var errBody dto.ErrorResponse
	status = s.call(t, http.MethodPost, "/api/v1/attendance", manager, map[string]any{"staff_id": st.ID, "action": "IN"}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_CLOCKED_IN", errBody.Code)

	s.clock.Set(s.clock.Now().Add(9*time.Hour + 30*time.Minute))
	var out dto.RecordAttendanceResponse
	status = s.call(t, http.MethodPost, "/api/v1/attendance", manager, map[string]any{"staff_id": st.ID, "action": "OUT"}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Clock-out recorded for Ada Obi (9.50 hours)", out.Message)
	require.NotNil(t, out.Record.HoursWorked)
	assert.InDelta(t, 9.5, *out.Record.HoursWorked, 1e-9)

	errBody = dto.ErrorResponse{}
	status = s.call(t, http.MethodPost, "/api/v1/attendance", manager, map[string]any{"staff_id": st.ID, "action": "OUT"}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NO_OPEN_ATTENDANCE", errBody.Code)

	var hours dto.HoursWorkedResponse
	status = s.call(t, http.MethodGet, "/api/v1/hours-worked/"+st.ID+"?duration=2024-03-01:2024-03-31", manager, nil, &hours)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 9.5, hours.HoursWorked, 1e-9)

	var records []dto.AttendanceResponse
	status = s.call(t, http.MethodGet, "/api/v1/attendance/"+st.ID, manager, nil, &records)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, records, 1)
	assert.Equal(t, "Ada Obi", records[0].StaffName)
}

func TestAttendance_ErrorResponses(t *testing.T) {
	s := newServer(t)
	manager := tokenFor(t, "manager", "")

	var errBody dto.ErrorResponse
	status := s.call(t, http.MethodPost, "/api/v1/attendance", manager, map[string]any{"action": "SIDEWAYS"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "required", errBody.Fields["staff_id"])
	assert.Equal(t, "oneof", errBody.Fields["action"])

	errBody = dto.ErrorResponse{}
	status = s.call(t, http.MethodPost, "/api/v1/attendance", manager,
		map[string]any{"staff_id": "00000000-0000-0000-0000-0000000000aa", "action": "IN"}, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "STAFF_NOT_FOUND", errBody.Code)

	errBody = dto.ErrorResponse{}
	status = s.call(t, http.MethodGet, "/api/v1/hours-worked/00000000-0000-0000-0000-0000000000aa?duration=ayer", manager, nil, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
}

func TestAttendance_StaffRoleOnlyForSelf(t *testing.T) {
	s := newServer(t)
	manager := tokenFor(t, "manager", "")
	ada := s.createStaff(t, manager, "AST-0001")
	bola := s.createStaff(t, manager, "AST-0002")
	self := tokenFor(t, "staff", ada.ID)

	var errBody dto.ErrorResponse
	status := s.call(t, http.MethodPost, "/api/v1/attendance", self, map[string]any{"staff_id": bola.ID, "action": "IN"}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errBody.Code)

	status = s.call(t, http.MethodPost, "/api/v1/attendance", self, map[string]any{"staff_id": ada.ID, "action": "IN"}, nil)
	assert.Equal(t, http.StatusOK, status)

	status = s.call(t, http.MethodPost, "/api/v1/staff", self, map[string]any{"staff_code": "X", "name": "X"}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestInventoryFlow(t *testing.T) {
	s := newServer(t)
	manager := tokenFor(t, "manager", "")
	staff := tokenFor(t, "staff", "")

	body := map[string]any{"sku": "glv-01", "name": "Gloves", "quantity": 3, "min_stock": 10, "max_stock": 50, "unit_price": "2.50"}
	status := s.call(t, http.MethodPost, "/api/v1/inventory", staff, body, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var item dto.InventoryItemResponse
	status = s.call(t, http.MethodPost, "/api/v1/inventory", manager, body, &item)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "GLV-01", item.SKU)
	assert.Equal(t, "Critical", item.Status)
	assert.Equal(t, "7.50", item.TotalValue)

	var errBody dto.ErrorResponse
	status = s.call(t, http.MethodPost, "/api/v1/inventory", manager, body, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errBody.Code)

	var list dto.InventoryListResponse
	status = s.call(t, http.MethodGet, "/api/v1/inventory?status=critical", staff, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Items, 1)

	errBody = dto.ErrorResponse{}
	status = s.call(t, http.MethodPost, "/api/v1/inventory/"+item.ID+"/adjust", manager, map[string]any{"type": "OUT", "quantity": 4}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	var adjusted dto.AdjustStockResponse
	status = s.call(t, http.MethodPost, "/api/v1/inventory/"+item.ID+"/adjust", manager, map[string]any{"type": "IN", "quantity": 20}, &adjusted)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "In Stock", adjusted.Item.Status)
	assert.EqualValues(t, 23, adjusted.Item.Quantity)

	var summary dto.InventorySummaryResponse
	status = s.call(t, http.MethodGet, "/api/v1/inventory/summary", staff, nil, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, summary.InStock)
	assert.Equal(t, "57.50", summary.TotalValue)
}

func TestAuthFlow_RegisterRequiresApproval(t *testing.T) {
	s := newServer(t)

	var user dto.UserResponse
	status := s.call(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{"email": "ada@example.com", "password": "s3cretpass"}, &user)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", user.Status)

	var errBody dto.ErrorResponse
	status = s.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "ada@example.com", "password": "s3cretpass"}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)

	status = s.call(t, http.MethodPut, "/api/v1/users/"+user.ID+"/approve", tokenFor(t, "manager", ""), nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = s.call(t, http.MethodPut, "/api/v1/users/"+user.ID+"/approve", tokenFor(t, "admin", ""), nil, nil)
	require.Equal(t, http.StatusOK, status)

	var login dto.LoginResponse
	status = s.call(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "ada@example.com", "password": "s3cretpass"}, &login)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, login.Token)

	status = s.call(t, http.MethodGet, "/api/v1/inventory", "Bearer "+login.Token, nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAttendance_ActionIsCaseInsensitive(t *testing.T) {
	s := newServer(t)
	manager := tokenFor(t, "manager", "")
	st := s.createStaff(t, manager, "AST-0003")

	var in dto.RecordAttendanceResponse
	status := s.call(t, http.MethodPost, "/api/v1/attendance", manager, map[string]any{"staff_id": st.ID, "action": "in"}, &in)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "IN", in.Record.Action)

	s.clock.Set(s.clock.Now().Add(2 * time.Hour))
	var out dto.RecordAttendanceResponse
	status = s.call(t, http.MethodPost, "/api/v1/attendance", manager, map[string]any{"staff_id": st.ID, "action": " Out "}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OUT", out.Record.Action)
}

func TestInventoryTransferFlow(t *testing.T) {
	s := newServer(t)
	manager := tokenFor(t, "manager", "")
	staff := tokenFor(t, "staff", "")

	var main, annex dto.WarehouseResponse
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/v1/warehouses", manager, map[string]any{"name": "Main"}, &main))
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/v1/warehouses", manager, map[string]any{"name": "Annex"}, &annex))

	var item dto.InventoryItemResponse
	body := map[string]any{"sku": "cot-01", "name": "Cotton", "warehouse_id": main.ID, "quantity": 30, "min_stock": 10, "max_stock": 100, "unit_price": "1.00"}
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/api/v1/inventory", manager, body, &item))

	path := "/api/v1/inventory/" + item.ID + "/transfer"
	status := s.call(t, http.MethodPost, path, staff, map[string]any{"to_warehouse_id": annex.ID, "quantity": 5}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var errBody dto.ErrorResponse
	status = s.call(t, http.MethodPost, path, manager, map[string]any{"to_warehouse_id": main.ID, "quantity": 5}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)

	errBody = dto.ErrorResponse{}
	status = s.call(t, http.MethodPost, path, manager, map[string]any{"to_warehouse_id": annex.ID, "quantity": 31}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	errBody = dto.ErrorResponse{}
	status = s.call(t, http.MethodPost, path, manager, map[string]any{"to_warehouse_id": annex.ID, "quantity": 0}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)

	var moved dto.TransferStockResponse
	status = s.call(t, http.MethodPost, path, manager, map[string]any{"to_warehouse_id": annex.ID, "quantity": 25}, &moved)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 5, moved.Source.Quantity)
	assert.Equal(t, "Low Stock", moved.Source.Status)
	assert.EqualValues(t, 25, moved.Destination.Quantity)
	assert.Equal(t, annex.ID, moved.Destination.WarehouseID)
	require.Len(t, moved.Movements, 2)
	assert.Equal(t, "TRANSFER", moved.Movements[0].Type)

	var list dto.InventoryListResponse
	status = s.call(t, http.MethodGet, "/api/v1/inventory?warehouse_id="+annex.ID, staff, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "COT-01", list.Items[0].SKU)
}
