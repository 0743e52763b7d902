package http

import (
	"net/http"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/tanzid64/assets-tracker/internal/entity"
)

func TestCreateDevice(t *testing.T) {
	ctx := newTestContext(t)
	engine := newTestRouter(t, ctx)
	owner := createUser(t, ctx, "owner", "owner@example.com", "password123", false)
	company := createCompany(t, ctx, "Acme", owner)

	body := map[string]string{"name": "Laptop", "serial_no": "L1245"}
	recorder := performRequest(t, engine, http.MethodPost, "/api/devices/", body, tokenFor(t, owner))
	assert.Equal(t, http.StatusCreated, recorder.Code)

	var device entity.Device
	if err := ctx.DB.Where("serial_no = ?", "L1245").First(&device).Error; err != nil {
		t.Fatalf("expected device in database: %v", err)
	}
	assert.Equal(t, true, device.IsAvailable)
	assert.Equal(t, company.ID, device.CompanyID)
}

func TestCreateDeviceWithoutCompany(t *testing.T) {
	ctx := newTestContext(t)
	engine := newTestRouter(t, ctx)
	user := createUser(t, ctx, "nocompany", "nocompany@example.com", "password123", false)

	body := map[string]string{"name": "New Device", "serial_no": "SN-1"}
	recorder := performRequest(t, engine, http.MethodPost, "/api/devices/", body, tokenFor(t, user))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateDeviceDuplicateSerial(t *testing.T) {
	ctx := newTestContext(t)
	engine := newTestRouter(t, ctx)
	owner := createUser(t, ctx, "owner", "owner@example.com", "password123", false)
	company := createCompany(t, ctx, "Acme", owner)
	createDevice(t, ctx, "Laptop-1", "SN-001", company)

	body := map[string]string{"name": "Laptop-2", "serial_no": "SN-001"}
	recorder := performRequest(t, engine, http.MethodPost, "/api/devices/", body, tokenFor(t, owner))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListDevicesScopedToOwnCompany(t *testing.T) {
	ctx := newTestContext(t)
	engine := newTestRouter(t, ctx)
	owner := createUser(t, ctx, "owner", "owner@example.com", "password123", false)
	company := createCompany(t, ctx, "Acme", owner)
	createDevice(t, ctx, "Laptop-1", "SN-001", company)

	otherOwner := createUser(t, ctx, "other", "other@example.com", "password123", false)
	otherCompany := createCompany(t, ctx, "Globex", otherOwner)
	createDevice(t, ctx, "Laptop-2", "SN-002", otherCompany)

	recorder := performRequest(t, engine, http.MethodGet, "/api/devices/", nil, tokenFor(t, owner))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Devices []entity.Device `json:"devices"`
	}
	decodeBody(t, recorder, &response)
	assert.Equal(t, 1, len(response.Devices))
	assert.Equal(t, "Laptop-1", response.Devices[0].Name)
}

func TestListDevicesWithoutCompany(t *testing.T) {
	ctx := newTestContext(t)
	engine := newTestRouter(t, ctx)
	user := createUser(t, ctx, "nocompany", "nocompany@example.com", "password123", false)

	recorder := performRequest(t, engine, http.MethodGet, "/api/devices/", nil, tokenFor(t, user))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateDevicePartial(t *testing.T) {
	ctx := newTestContext(t)
	engine := newTestRouter(t, ctx)
	owner := createUser(t, ctx, "owner", "owner@example.com", "password123", false)
	company := createCompany(t, ctx, "Acme", owner)
	device := createDevice(t, ctx, "Laptop-1", "SN-001", company)

	body := map[string]string{"name": "Laptop-1b"}
	recorder := performRequest(t, engine, http.MethodPut, "/api/devices/"+device.ID.String()+"/", body, tokenFor(t, owner))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var updated entity.Device
	if err := ctx.DB.First(&updated, "id = ?", device.ID).Error; err != nil {
		t.Fatalf("failed to reload device: %v", err)
	}
	assert.Equal(t, "Laptop-1b", updated.Name)
	assert.Equal(t, "SN-001", updated.SerialNo)
}

func TestUpdateDeviceCannotFlipAvailability(t *testing.T) {
	ctx := newTestContext(t)
	engine := newTestRouter(t, ctx)
	owner := createUser(t, ctx, "owner", "owner@example.com", "password123", false)
	company := createCompany(t, ctx, "Acme", owner)
	device := createDevice(t, ctx, "Laptop-1", "SN-001", company)

	body := map[string]interface{}{"is_available": false}
	recorder := performRequest(t, engine, http.MethodPut, "/api/devices/"+device.ID.String()+"/", body, tokenFor(t, owner))
	assert.Equal(t, http.StatusOK, recorder.Code)

	var updated entity.Device
	if err := ctx.DB.First(&updated, "id = ?", device.ID).Error; err != nil {
		t.Fatalf("failed to reload device: %v", err)
	}
	assert.Equal(t, true, updated.IsAvailable)
}

func TestDeleteDeviceRemovesLogs(t *testing.T) {
	ctx := newTestContext(t)
	engine := newTestRouter(t, ctx)
	owner := createUser(t, ctx, "owner", "owner@example.com", "password123", false)
	company := createCompany(t, ctx, "Acme", owner)
	employee := createEmployee(t, ctx, "Alice", "alice@example.com", company)
	device := createDevice(t, ctx, "Laptop-1", "SN-001", company)
	log := entity.DeviceLog{
		DeviceID:            device.ID,
		CheckedOutByID:      employee.ID,
		CheckedOutCondition: "new",
	}
	if err := ctx.DB.Create(&log).Error; err != nil {
		t.Fatalf("failed to create device log: %v", err)
	}

	recorder := performRequest(t, engine, http.MethodDelete, "/api/devices/"+device.ID.String()+"/", nil, tokenFor(t, owner))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	var devices, logs int64
	ctx.DB.Model(&entity.Device{}).Count(&devices)
	ctx.DB.Model(&entity.DeviceLog{}).Count(&logs)
	assert.Equal(t, int64(0), devices)
	assert.Equal(t, int64(0), logs)
}
