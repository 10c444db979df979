package integrationtests

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"fablab/pkg/model"
	"fablab/test/integration/testutil"
)

var httpClient *testutil.Client

// TestMain drives the suite against a running server. Set TEST_SERVER_URL to
// enable it; without a server the suite is skipped.
func TestMain(t *testing.T) {
	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration tests")
	}

	httpClient = testutil.NewClient(serverURL)
	httpClient.WaitForHealthy(t, 30*time.Second)

	testStatus(t)
	testCreateAndList(t)
	testConflictDetection(t)
	testAdjacentSlots(t)
	testRuleRejections(t)
	testCancel(t)
	testConcurrentCreation(t)
}

// --- Helpers ---

// uniqueService isolates each scenario so runs never collide on slots.
func uniqueService(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

func futureDate(daysAhead int) string {
	return time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func reservationPayload(service, date, start, end string) map[string]any {
	return map[string]any{
		"usuari_id":  "integration-user",
		"servei":     service,
		"data":       date,
		"hora_inici": start,
		"hora_fi":    end,
	}
}

func createReservation(t *testing.T, service, date, start, end string) model.Reservation {
	t.Helper()

	resp := httpClient.POST(t, "/reserves", reservationPayload(service, date, start, end))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Reservation
	if err := resp.UnmarshalJSON(&created); err != nil {
		t.Fatalf("failed to decode created reservation: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created reservation has no id")
	}
	return created
}

// --- Scenarios ---

func testStatus(t *testing.T) {
	resp := httpClient.GET(t, "/")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertContains(t, resp, `"status":"online"`)
	testutil.AssertContains(t, resp, "horari_limit")
}

func testCreateAndList(t *testing.T) {
	service := uniqueService("llistat")
	date := futureDate(7)

	createReservation(t, service, date, "09:00", "10:00")
	createReservation(t, service, date, "10:00", "11:00")

	resp := httpClient.GET(t, fmt.Sprintf("/reserves?servei=%s&data=%s", service, date))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var reservations []model.Reservation
	if err := resp.UnmarshalJSON(&reservations); err != nil {
		t.Fatalf("failed to decode reservation list: %v", err)
	}
	if len(reservations) != 2 {
		t.Errorf("listed %d reservations, want 2", len(reservations))
	}
}

func testConflictDetection(t *testing.T) {
	service := uniqueService("solapament")
	date := futureDate(7)

	createReservation(t, service, date, "10:00", "11:00")

	resp := httpClient.POST(t, "/reserves", reservationPayload(service, date, "10:30", "11:30"))
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	testutil.AssertContains(t, resp, service)
}

func testAdjacentSlots(t *testing.T) {
	service := uniqueService("consecutiu")
	date := futureDate(7)

	createReservation(t, service, date, "10:00", "11:00")
	createReservation(t, service, date, "11:00", "12:00")
	createReservation(t, service, date, "09:00", "10:00")
}

func testRuleRejections(t *testing.T) {
	service := uniqueService("regles")

	tests := []struct {
		name    string
		payload map[string]any
		want    int
	}{
		{
			name:    "past date",
			payload: reservationPayload(service, "2020-01-01", "10:00", "11:00"),
			want:    http.StatusBadRequest,
		},
		{
			name:    "outside business hours",
			payload: reservationPayload(service, futureDate(7), "08:00", "09:00"),
			want:    http.StatusBadRequest,
		},
		{
			name:    "inverted interval",
			payload: reservationPayload(service, futureDate(7), "11:00", "10:00"),
			want:    http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		resp := httpClient.POST(t, "/reserves", tt.payload)
		if resp.StatusCode != tt.want {
			t.Errorf("%s: status = %d, want %d. Body: %s", tt.name, resp.StatusCode, tt.want, string(resp.Body))
		}
	}
}

func testCancel(t *testing.T) {
	service := uniqueService("cancellacio")
	date := futureDate(7)

	created := createReservation(t, service, date, "10:00", "11:00")

	resp := httpClient.DELETE(t, "/reserves/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = httpClient.DELETE(t, "/reserves/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)

	// The freed slot must be bookable again.
	createReservation(t, service, date, "10:00", "11:00")
}

func testConcurrentCreation(t *testing.T) {
	service := uniqueService("concurrent")
	date := futureDate(7)
	payload := reservationPayload(service, date, "10:00", "11:00")

	const racers = 5
	var wg sync.WaitGroup
	statuses := make(chan int, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := httpClient.POST(t, "/reserves", payload)
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	var created, conflicted int
	for status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Errorf("unexpected status %d", status)
		}
	}

	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}
	if conflicted != racers-1 {
		t.Errorf("conflicted = %d, want %d", conflicted, racers-1)
	}
}
