package booking_controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rideon/rental/models/booking_models"
	"github.com/rideon/rental/models/shared_models"
	"github.com/rideon/rental/models/vehicle_models"
	"github.com/rideon/rental/services/booking_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore backs the controller tests without a database, keeping the
// same contracts as the Postgres store.
type memStore struct {
	vehicles map[int64]*vehicle_models.Vehicle
	bookings map[int64]*booking_models.Booking
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		vehicles: make(map[int64]*vehicle_models.Vehicle),
		bookings: make(map[int64]*booking_models.Booking),
		nextID:   1,
	}
}

func (m *memStore) VehicleByID(_ context.Context, id int64) (*vehicle_models.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return nil, booking_service.ErrVehicleNotFound
	}
	copied := *v
	return &copied, nil
}

func (m *memStore) CreateBooking(_ context.Context, b *booking_models.Booking) error {
	v, ok := m.vehicles[b.VehicleID]
	if !ok {
		return booking_service.ErrVehicleNotFound
	}
	if v.AvailabilityStatus != vehicle_models.StatusAvailable {
		return booking_service.ErrVehicleUnavailable
	}
	v.AvailabilityStatus = vehicle_models.StatusBooked
	b.ID = m.nextID
	m.nextID++
	copied := *b
	m.bookings[b.ID] = &copied
	return nil
}

func (m *memStore) BookingByID(_ context.Context, id int64) (*booking_models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, booking_service.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memStore) UpdateBookingStatus(_ context.Context, id int64, status string, releaseVehicle bool) (*booking_models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, booking_service.ErrBookingNotFound
	}
	if b.Status != booking_models.StatusActive {
		return nil, booking_service.ErrBookingClosed
	}
	b.Status = status
	if releaseVehicle {
		if v, ok := m.vehicles[b.VehicleID]; ok {
			v.AvailabilityStatus = vehicle_models.StatusAvailable
		}
	}
	copied := *b
	return &copied, nil
}

func (m *memStore) ReleaseExpired(_ context.Context, today time.Time) (int, error) {
	swept := 0
	for _, b := range m.bookings {
		if b.Status == booking_models.StatusActive && b.RentEndDate.Before(today) {
			b.Status = booking_models.StatusReturned
			if v, ok := m.vehicles[b.VehicleID]; ok {
				v.AvailabilityStatus = vehicle_models.StatusAvailable
			}
			swept++
		}
	}
	return swept, nil
}

func (m *memStore) ListAllBookings(_ context.Context) ([]booking_models.BookingDetail, error) {
	details := []booking_models.BookingDetail{}
	for _, b := range m.bookings {
		details = append(details, booking_models.Detail(b))
	}
	return details, nil
}

func (m *memStore) ListCustomerBookings(_ context.Context, customerID int64) ([]booking_models.BookingDetail, error) {
	details := []booking_models.BookingDetail{}
	for _, b := range m.bookings {
		if b.CustomerID == customerID {
			details = append(details, booking_models.Detail(b))
		}
	}
	return details, nil
}

// withCaller stands in for the auth middleware.
func withCaller(userID int64, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

func newTestRouter(store *memStore, userID int64, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewBookingController(booking_service.NewBookingService(store))

	r := gin.New()
	api := r.Group("/bookings")
	api.Use(withCaller(userID, role))
	{
		api.POST("/", controller.CreateBooking)
		api.GET("/", controller.GetBookings)
		api.PUT("/:id", controller.UpdateBooking)
	}
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  string          `json:"errors"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func wire(t time.Time) string {
	return t.Format(booking_models.DateLayout)
}

func TestCreateBookingEndpoint(t *testing.T) {
	start := time.Now().AddDate(0, 0, 5)
	end := start.AddDate(0, 0, 3)

	t.Run("Success", func(t *testing.T) {
		store := newMemStore()
		store.vehicles[1] = &vehicle_models.Vehicle{
			ID: 1, VehicleName: "City Hatch", DailyRentPrice: 100,
			AvailabilityStatus: vehicle_models.StatusAvailable,
		}
		r := newTestRouter(store, 7, shared_models.RoleCustomer)

		w, env := doJSON(t, r, http.MethodPost, "/bookings/", gin.H{
			"vehicle_id":      1,
			"rent_start_date": wire(start),
			"rent_end_date":   wire(end),
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Booking created successfully", env.Message)

		var detail booking_models.BookingDetail
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.Equal(t, int64(300), detail.TotalPrice)
		assert.Equal(t, booking_models.StatusActive, detail.Status)
		require.NotNil(t, detail.Vehicle)
		assert.Equal(t, "City Hatch", detail.Vehicle.VehicleName)
	})

	t.Run("AdminBooksForCustomer", func(t *testing.T) {
		store := newMemStore()
		store.vehicles[1] = &vehicle_models.Vehicle{
			ID: 1, DailyRentPrice: 100, AvailabilityStatus: vehicle_models.StatusAvailable,
		}
		r := newTestRouter(store, 1, shared_models.RoleAdmin)

		w, env := doJSON(t, r, http.MethodPost, "/bookings/", gin.H{
			"customer_id":     7,
			"vehicle_id":      1,
			"rent_start_date": wire(start),
			"rent_end_date":   wire(end),
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var detail booking_models.BookingDetail
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.Equal(t, int64(7), detail.CustomerID)
	})

	t.Run("CustomerCannotBookForOthers", func(t *testing.T) {
		store := newMemStore()
		store.vehicles[1] = &vehicle_models.Vehicle{
			ID: 1, DailyRentPrice: 100, AvailabilityStatus: vehicle_models.StatusAvailable,
		}
		r := newTestRouter(store, 7, shared_models.RoleCustomer)

		w, env := doJSON(t, r, http.MethodPost, "/bookings/", gin.H{
			"customer_id":     8,
			"vehicle_id":      1,
			"rent_start_date": wire(start),
			"rent_end_date":   wire(end),
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var detail booking_models.BookingDetail
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.Equal(t, int64(7), detail.CustomerID, "body customer_id ignored for customers")
	})

	t.Run("VehicleNotFound", func(t *testing.T) {
		r := newTestRouter(newMemStore(), 7, shared_models.RoleCustomer)

		w, env := doJSON(t, r, http.MethodPost, "/bookings/", gin.H{
			"vehicle_id":      42,
			"rent_start_date": wire(start),
			"rent_end_date":   wire(end),
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, env.Success)
	})

	t.Run("VehicleUnavailable", func(t *testing.T) {
		store := newMemStore()
		store.vehicles[1] = &vehicle_models.Vehicle{
			ID: 1, DailyRentPrice: 100, AvailabilityStatus: vehicle_models.StatusBooked,
		}
		r := newTestRouter(store, 7, shared_models.RoleCustomer)

		w, _ := doJSON(t, r, http.MethodPost, "/bookings/", gin.H{
			"vehicle_id":      1,
			"rent_start_date": wire(start),
			"rent_end_date":   wire(end),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		r := newTestRouter(newMemStore(), 7, shared_models.RoleCustomer)

		w, _ := doJSON(t, r, http.MethodPost, "/bookings/", gin.H{
			"vehicle_id":      1,
			"rent_start_date": wire(end),
			"rent_end_date":   wire(start),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MalformedDate", func(t *testing.T) {
		r := newTestRouter(newMemStore(), 7, shared_models.RoleCustomer)

		w, _ := doJSON(t, r, http.MethodPost, "/bookings/", gin.H{
			"vehicle_id":      1,
			"rent_start_date": "12-06-2025",
			"rent_end_date":   wire(end),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBookingsEndpoint(t *testing.T) {
	t.Run("CustomerEmptyList", func(t *testing.T) {
		r := newTestRouter(newMemStore(), 7, shared_models.RoleCustomer)

		w, env := doJSON(t, r, http.MethodGet, "/bookings/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "You have no bookings yet", env.Message)
	})

	t.Run("AdminEmptyList", func(t *testing.T) {
		r := newTestRouter(newMemStore(), 1, shared_models.RoleAdmin)

		w, env := doJSON(t, r, http.MethodGet, "/bookings/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "No bookings found", env.Message)
	})

	t.Run("CustomerSeesOnlyOwn", func(t *testing.T) {
		store := newMemStore()
		future := time.Now().AddDate(0, 0, 5)
		store.bookings[1] = &booking_models.Booking{
			ID: 1, CustomerID: 7, VehicleID: 1,
			RentStartDate: future, RentEndDate: future.AddDate(0, 0, 2),
			Status: booking_models.StatusActive,
		}
		store.bookings[2] = &booking_models.Booking{
			ID: 2, CustomerID: 8, VehicleID: 2,
			RentStartDate: future, RentEndDate: future.AddDate(0, 0, 2),
			Status: booking_models.StatusActive,
		}
		r := newTestRouter(store, 7, shared_models.RoleCustomer)

		w, env := doJSON(t, r, http.MethodGet, "/bookings/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var details []booking_models.BookingDetail
		require.NoError(t, json.Unmarshal(env.Data, &details))
		require.Len(t, details, 1)
		assert.Equal(t, int64(7), details[0].CustomerID)
	})
}

func TestUpdateBookingEndpoint(t *testing.T) {
	seed := func(store *memStore, customerID int64, start time.Time) int64 {
		store.vehicles[1] = &vehicle_models.Vehicle{
			ID: 1, DailyRentPrice: 100, AvailabilityStatus: vehicle_models.StatusBooked,
		}
		store.bookings[1] = &booking_models.Booking{
			ID: 1, CustomerID: customerID, VehicleID: 1,
			RentStartDate: start, RentEndDate: start.AddDate(0, 0, 3),
			Status: booking_models.StatusActive,
		}
		return 1
	}
	future := time.Now().AddDate(0, 0, 5)
	past := time.Now().AddDate(0, 0, -1)

	t.Run("CustomerCancels", func(t *testing.T) {
		store := newMemStore()
		id := seed(store, 7, future)
		r := newTestRouter(store, 7, shared_models.RoleCustomer)

		w, env := doJSON(t, r, http.MethodPut, fmt.Sprintf("/bookings/%d", id), gin.H{"status": "cancelled"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Booking cancelled successfully", env.Message)
	})

	t.Run("CustomerCancelTooLate", func(t *testing.T) {
		store := newMemStore()
		id := seed(store, 7, past)
		r := newTestRouter(store, 7, shared_models.RoleCustomer)

		w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/bookings/%d", id), gin.H{"status": "cancelled"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("CustomerCannotReturn", func(t *testing.T) {
		store := newMemStore()
		id := seed(store, 7, future)
		r := newTestRouter(store, 7, shared_models.RoleCustomer)

		w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/bookings/%d", id), gin.H{"status": "returned"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("NotOwner", func(t *testing.T) {
		store := newMemStore()
		id := seed(store, 8, future)
		r := newTestRouter(store, 7, shared_models.RoleCustomer)

		w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/bookings/%d", id), gin.H{"status": "cancelled"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AdminReturns", func(t *testing.T) {
		store := newMemStore()
		id := seed(store, 7, past)
		r := newTestRouter(store, 1, shared_models.RoleAdmin)

		w, env := doJSON(t, r, http.MethodPut, fmt.Sprintf("/bookings/%d", id), gin.H{"status": "returned"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Booking marked as returned", env.Message)
		assert.Equal(t, vehicle_models.StatusAvailable, store.vehicles[1].AvailabilityStatus)

		var detail booking_models.BookingDetail
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		require.NotNil(t, detail.Vehicle)
		assert.Equal(t, vehicle_models.StatusAvailable, detail.Vehicle.AvailabilityStatus)
	})

	t.Run("AlreadyClosed", func(t *testing.T) {
		store := newMemStore()
		id := seed(store, 7, future)
		store.bookings[id].Status = booking_models.StatusCancelled
		r := newTestRouter(store, 1, shared_models.RoleAdmin)

		w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/bookings/%d", id), gin.H{"status": "returned"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		r := newTestRouter(newMemStore(), 1, shared_models.RoleAdmin)

		w, _ := doJSON(t, r, http.MethodPut, "/bookings/99", gin.H{"status": "returned"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		store := newMemStore()
		id := seed(store, 7, future)
		r := newTestRouter(store, 1, shared_models.RoleAdmin)

		w, _ := doJSON(t, r, http.MethodPut, fmt.Sprintf("/bookings/%d", id), gin.H{"status": "active"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
