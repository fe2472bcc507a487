package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/greenspace/marketplace/internal/core/domain"
	"github.com/greenspace/marketplace/internal/core/ports"
)

type stubBookingService struct {
	createFn   func(ctx context.Context, input ports.CreateBookingInput) (*ports.BookingResult, error)
	approveFn  func(ctx context.Context, bookingID, callerID string) (*domain.Booking, error)
	rejectFn   func(ctx context.Context, bookingID, callerID, reason string) (*domain.Booking, error)
	completeFn func(ctx context.Context, bookingID, callerID string) (*domain.Booking, error)
	cancelFn   func(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error)
	getFn      func(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error)
}

func (s *stubBookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*ports.BookingResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookingService) Approve(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
	return s.approveFn(ctx, bookingID, callerID)
}

func (s *stubBookingService) Reject(ctx context.Context, bookingID, callerID, reason string) (*domain.Booking, error) {
	return s.rejectFn(ctx, bookingID, callerID, reason)
}

func (s *stubBookingService) Complete(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
	return s.completeFn(ctx, bookingID, callerID)
}

func (s *stubBookingService) Cancel(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error) {
	return s.cancelFn(ctx, bookingID, callerID, callerRole)
}

func (s *stubBookingService) Get(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error) {
	return s.getFn(ctx, bookingID, callerID, callerRole)
}

func (s *stubBookingService) ListByGardener(ctx context.Context, gardenerID string) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) ListByLandowner(ctx context.Context, landownerID string) ([]*domain.Booking, error) {
	return nil, nil
}

// newBookingContext builds an echo context with the validator installed and
// the auth claims set, the way the Auth middleware would leave them.
func newBookingContext(method, target, body, userID, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func TestBookingHandler_Create_Success(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*ports.BookingResult, error) {
			if input.GardenerID != "usr_1" {
				t.Fatalf("gardener id not taken from claims: %q", input.GardenerID)
			}
			if input.PlotID != "plot_1" {
				t.Fatalf("unexpected plot id: %q", input.PlotID)
			}
			if input.IdempotencyKey != "key-123" {
				t.Fatalf("idempotency key not forwarded: %q", input.IdempotencyKey)
			}
			return &ports.BookingResult{
				Booking: &domain.Booking{ID: "bkg_1", PlotID: input.PlotID, GardenerID: input.GardenerID, Status: domain.BookingPending},
			}, nil
		},
	}
	handler := NewBookingHandler(stub)

	body := `{"plot_id":"plot_1","start_date":"2026-03-01T00:00:00Z","end_date":"2026-06-01T00:00:00Z","message":"hi"}`
	c, rec := newBookingContext(http.MethodPost, "/api/bookings", body, "usr_1", "gardener")
	c.Request().Header.Set("Idempotency-Key", "key-123")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "pending" {
		t.Fatalf("expected pending booking, got %+v", resp)
	}
}

func TestBookingHandler_Create_IdempotentReplayReturns200(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*ports.BookingResult, error) {
			return &ports.BookingResult{
				Booking:        &domain.Booking{ID: "bkg_1", Status: domain.BookingPending},
				AlreadyExisted: true,
			}, nil
		},
	}
	handler := NewBookingHandler(stub)

	body := `{"plot_id":"plot_1","start_date":"2026-03-01T00:00:00Z","end_date":"2026-06-01T00:00:00Z"}`
	c, rec := newBookingContext(http.MethodPost, "/api/bookings", body, "usr_1", "gardener")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestBookingHandler_Create_MissingPlotID(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, input ports.CreateBookingInput) (*ports.BookingResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookingHandler(stub)

	body := `{"start_date":"2026-03-01T00:00:00Z","end_date":"2026-06-01T00:00:00Z"}`
	c, _ := newBookingContext(http.MethodPost, "/api/bookings", body, "usr_1", "gardener")

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 validation error, got %v", err)
	}
}

func TestBookingHandler_Create_MissingClaims(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{})

	body := `{"plot_id":"plot_1","start_date":"2026-03-01T00:00:00Z","end_date":"2026-06-01T00:00:00Z"}`
	c, _ := newBookingContext(http.MethodPost, "/api/bookings", body, "", "")

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestBookingHandler_Approve_Success(t *testing.T) {
	stub := &stubBookingService{
		approveFn: func(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
			if bookingID != "bkg_1" || callerID != "owner_1" {
				t.Fatalf("unexpected args: %s %s", bookingID, callerID)
			}
			return &domain.Booking{ID: bookingID, Status: domain.BookingApproved}, nil
		},
	}
	handler := NewBookingHandler(stub)

	c, rec := newBookingContext(http.MethodPut, "/api/bookings/bkg_1/approve", "", "owner_1", "landowner")
	c.SetParamNames("id")
	c.SetParamValues("bkg_1")

	if err := handler.Approve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "approved" {
		t.Fatalf("expected approved, got %+v", resp)
	}
}

func TestBookingHandler_Approve_LostRacePassesErrorThrough(t *testing.T) {
	stub := &stubBookingService{
		approveFn: func(ctx context.Context, bookingID, callerID string) (*domain.Booking, error) {
			return nil, domain.ErrPlotUnavailable
		},
	}
	handler := NewBookingHandler(stub)

	c, _ := newBookingContext(http.MethodPut, "/api/bookings/bkg_1/approve", "", "owner_1", "landowner")
	c.SetParamNames("id")
	c.SetParamValues("bkg_1")

	if err := handler.Approve(c); !errors.Is(err, domain.ErrPlotUnavailable) {
		t.Fatalf("expected ErrPlotUnavailable, got %v", err)
	}
}

func TestBookingHandler_Reject_RequiresReason(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{
		rejectFn: func(ctx context.Context, bookingID, callerID, reason string) (*domain.Booking, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	c, _ := newBookingContext(http.MethodPut, "/api/bookings/bkg_1/reject", `{}`, "owner_1", "landowner")
	c.SetParamNames("id")
	c.SetParamValues("bkg_1")

	err := handler.Reject(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestBookingHandler_Cancel_ForwardsRole(t *testing.T) {
	stub := &stubBookingService{
		cancelFn: func(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error) {
			if callerRole != domain.RoleAdmin {
				t.Fatalf("role not forwarded: %q", callerRole)
			}
			return &domain.Booking{ID: bookingID, Status: domain.BookingCancelled}, nil
		},
	}
	handler := NewBookingHandler(stub)

	c, rec := newBookingContext(http.MethodPut, "/api/bookings/bkg_1/cancel", "", "adm_1", "admin")
	c.SetParamNames("id")
	c.SetParamValues("bkg_1")

	if err := handler.Cancel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBookingHandler_Get_ForbiddenPassesThrough(t *testing.T) {
	stub := &stubBookingService{
		getFn: func(ctx context.Context, bookingID, callerID string, callerRole domain.Role) (*domain.Booking, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewBookingHandler(stub)

	c, _ := newBookingContext(http.MethodGet, "/api/bookings/bkg_1", "", "usr_2", "gardener")
	c.SetParamNames("id")
	c.SetParamValues("bkg_1")

	if err := handler.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
