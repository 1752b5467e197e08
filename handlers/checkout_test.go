package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"growthquest/database/repository"
	"growthquest/models"
	"growthquest/services/checkout"
	"growthquest/services/holdsession"
	"growthquest/services/inventory"
	"growthquest/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type checkoutFixture struct {
	router   *gin.Engine
	clock    *fakeClock
	inv      *inventory.Store
	sessions *holdsession.Manager
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := repository.NewInMemoryCatalog(
		[]models.Offering{
			{ID: "off-photo", ProviderID: "prov-1", Title: "Trail Photography Immersion"},
		},
		[]models.Cohort{
			{ID: "coh-photo", OfferingID: "off-photo", Capacity: 8, SeatsLeft: 1, Price: 240,
				End: time.Date(2026, 5, 3, 17, 0, 0, 0, time.UTC)},
		},
		[]models.AddOn{
			{ID: "addon-print", OfferingID: "off-photo", Name: "Print pack", Price: 45},
		},
		[]models.BundleSuggestion{
			{PrimaryOfferingID: "off-photo", CompanionOfferingIDs: []string{"off-bake"},
				CombinedPrice: 390, Blurb: "Pair it and save."},
		},
		nil,
	)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	inv := inventory.NewStore([]models.Cohort{
		{ID: "coh-photo", OfferingID: "off-photo", ProviderID: "prov-1", Capacity: 8, SeatsLeft: 1, Price: 240},
	})
	sessions := holdsession.NewManager(inv, clock, 15*time.Minute)
	resolver := &checkout.DefaultResolver{
		Inventory: inv,
		Sessions:  sessions,
		Bookings:  repository.NewInMemoryBookingRepo(),
		Catalog:   catalog,
		Clock:     clock,
	}

	h := NewCheckoutHandler(resolver, utils.GetLogger())
	router := gin.New()
	api := router.Group("/api/checkout")
	api.POST("/hold", h.Hold)
	api.POST("/confirm", h.Confirm)
	api.DELETE("/session/:sessionID", h.Cancel)
	api.GET("/session/:sessionID/remaining", h.Remaining)
	api.POST("/waitlist", h.JoinWaitlist)
	api.GET("/bundles/:offeringID", h.SuggestBundle)
	api.GET("/bookings", h.ListBookings)

	return &checkoutFixture{router: router, clock: clock, inv: inv, sessions: sessions}
}

func (f *checkoutFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHoldEndpoint(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/hold",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Session          holdsession.Session      `json:"session"`
		RemainingSeconds int                      `json:"remainingSeconds"`
		BundleSuggestion *models.BundleSuggestion `json:"bundleSuggestion"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "coh-photo", resp.Session.CohortID)
	assert.Equal(t, holdsession.StateHeld, resp.Session.State)
	assert.Equal(t, 15*60, resp.RemainingSeconds)
	require.NotNil(t, resp.BundleSuggestion)
	assert.Equal(t, "off-photo", resp.BundleSuggestion.PrimaryOfferingID)

	// The only seat is held now: the next hold answers 409 with a waitlist pointer.
	w = f.do(t, http.MethodPost, "/api/checkout/hold",
		gin.H{"cohortId": "coh-photo", "holderId": "user-2"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "/api/checkout/waitlist")
}

func TestHoldEndpoint_UnknownCohort(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/hold",
		gin.H{"cohortId": "coh-nope", "holderId": "user-1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHoldEndpoint_MissingFields(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/hold", gin.H{"cohortId": "coh-photo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmEndpoint(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/hold",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var held struct {
		Session holdsession.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &held))

	w = f.do(t, http.MethodPost, "/api/checkout/confirm",
		gin.H{"sessionId": held.Session.ID, "addOnIds": []string{"addon-print"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.BookingConfirmed, resp.Booking.Status)
	assert.Equal(t, 285.0, resp.Booking.TotalPrice)

	// The seat stays consumed.
	left, err := f.inv.SeatsLeft("coh-photo")
	require.NoError(t, err)
	assert.Equal(t, 0, left)
}

func TestConfirmEndpoint_ExpiredHoldIsGone(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/hold",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var held struct {
		Session holdsession.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &held))

	f.clock.Advance(16 * time.Minute)

	w = f.do(t, http.MethodPost, "/api/checkout/confirm",
		gin.H{"sessionId": held.Session.ID})
	assert.Equal(t, http.StatusGone, w.Code)

	// The late confirm released the seat.
	left, err := f.inv.SeatsLeft("coh-photo")
	require.NoError(t, err)
	assert.Equal(t, 1, left)
}

func TestConfirmEndpoint_UnknownAddOn(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/hold",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var held struct {
		Session holdsession.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &held))

	w = f.do(t, http.MethodPost, "/api/checkout/confirm",
		gin.H{"sessionId": held.Session.ID, "addOnIds": []string{"addon-nope"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// The hold survives a bad add-on selection and can be confirmed again.
	w = f.do(t, http.MethodPost, "/api/checkout/confirm",
		gin.H{"sessionId": held.Session.ID, "addOnIds": []string{"addon-print"}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCancelEndpoint(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/hold",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var held struct {
		Session holdsession.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &held))

	w = f.do(t, http.MethodDelete, "/api/checkout/session/"+held.Session.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	left, err := f.inv.SeatsLeft("coh-photo")
	require.NoError(t, err)
	assert.Equal(t, 1, left)

	// Cancelling again reports the expiry instead of double-releasing.
	w = f.do(t, http.MethodDelete, "/api/checkout/session/"+held.Session.ID, nil)
	assert.Equal(t, http.StatusGone, w.Code)
	left, err = f.inv.SeatsLeft("coh-photo")
	require.NoError(t, err)
	assert.Equal(t, 1, left)
}

func TestRemainingEndpoint(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/hold",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var held struct {
		Session holdsession.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &held))

	f.clock.Advance(5 * time.Minute)

	w = f.do(t, http.MethodGet, "/api/checkout/session/"+held.Session.ID+"/remaining", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		RemainingSeconds int `json:"remainingSeconds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10*60, resp.RemainingSeconds)

	w = f.do(t, http.MethodGet, "/api/checkout/session/sess-nope/remaining", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWaitlistEndpoint_Idempotent(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodPost, "/api/checkout/waitlist",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var first struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, models.BookingWaitlisted, first.Booking.Status)

	w = f.do(t, http.MethodPost, "/api/checkout/waitlist",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var second struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
}

func TestBundleEndpoint(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodGet, "/api/checkout/bundles/off-photo", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pair it and save.")

	w = f.do(t, http.MethodGet, "/api/checkout/bundles/off-nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBookingsEndpoint(t *testing.T) {
	f := newCheckoutFixture(t)

	w := f.do(t, http.MethodGet, "/api/checkout/bookings", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/checkout/waitlist",
		gin.H{"cohortId": "coh-photo", "holderId": "user-1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/api/checkout/bookings?holderId=user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, models.BookingWaitlisted, resp.Bookings[0].Status)
}
