package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tablewright/seatplan/pkg/pipeline"
	"github.com/tablewright/seatplan/pkg/store"
)

const testConfig = `
name = "reception"

[[guests]]
id = "ada"
name = "Ada"
from_host = true

[[guests]]
id = "eve"
name = "Eve"

[[tables]]
name = "Head"
shape = "round"
seats = 4

[[rules]]
kind = "apart"
guest_a = "ada"
guest_b = "eve"
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fileStore, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	srv := NewServer(Config{
		Runner: pipeline.NewRunner(nil, nil, log.New(io.Discard)),
		Store:  fileStore,
		Logger: log.New(io.Discard),
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s error: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func createPlan(t *testing.T, ts *httptest.Server) planResponse {
	t.Helper()
	resp := postJSON(t, ts.URL+"/v1/plans", createPlanRequest{Config: testConfig})
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("create plan status = %d, body %s", resp.StatusCode, body)
	}
	return decode[planResponse](t, resp)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateAndGetPlan(t *testing.T) {
	ts := newTestServer(t)
	created := createPlan(t, ts)

	if created.ID == "" {
		t.Fatal("created plan has no id")
	}
	if created.Document.Name != "reception" || len(created.Document.Tables) != 1 {
		t.Errorf("created document = %+v, want reception with one table", created.Document)
	}

	resp, err := http.Get(ts.URL + "/v1/plans/" + created.ID + "/")
	if err != nil {
		t.Fatal(err)
	}
	got := decode[planResponse](t, resp)
	if got.Document.Tables[0].ID != created.Document.Tables[0].ID {
		t.Error("fetched plan differs from created plan")
	}
}

func TestCreatePlanRejectsBadConfig(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/v1/plans", createPlanRequest{Config: "not [valid toml"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad config status = %d, want 400", resp.StatusCode)
	}
}

func TestGetUnknownPlan(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/plans/nope/violations")
	if err != nil {
		t.Fatal(err)
	}
	got := decode[errorResponse](t, resp)
	if resp.StatusCode != http.StatusNotFound || got.Code != "PLAN_NOT_FOUND" {
		t.Errorf("unknown plan = %d %q, want 404 PLAN_NOT_FOUND", resp.StatusCode, got.Code)
	}
}

func TestAssignAndViolations(t *testing.T) {
	ts := newTestServer(t)
	created := createPlan(t, ts)
	tbl := created.Document.Tables[0]
	base := ts.URL + "/v1/plans/" + created.ID

	resp := postJSON(t, base+"/assign", assignRequest{
		TableID: tbl.ID, SeatID: tbl.Seats[0].ID, GuestID: "ada",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("assign status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	// Simulation reports the violation without committing.
	resp = postJSON(t, base+"/assign", assignRequest{
		TableID: tbl.ID, SeatID: tbl.Seats[1].ID, GuestID: "eve", Simulate: true,
	})
	sim := decode[struct {
		Violations []json.RawMessage `json:"violations"`
	}](t, resp)
	if len(sim.Violations) != 1 {
		t.Errorf("simulated violations = %d, want 1", len(sim.Violations))
	}

	resp, err := http.Get(base + "/violations")
	if err != nil {
		t.Fatal(err)
	}
	report := decode[struct {
		Violations []json.RawMessage `json:"violations"`
	}](t, resp)
	if len(report.Violations) != 0 {
		t.Errorf("committed violations after simulate = %d, want 0", len(report.Violations))
	}

	// Committing the adjacent assignment surfaces it.
	resp = postJSON(t, base+"/assign", assignRequest{
		TableID: tbl.ID, SeatID: tbl.Seats[1].ID, GuestID: "eve",
	})
	committed := decode[struct {
		OK         bool              `json:"ok"`
		Violations []json.RawMessage `json:"violations"`
	}](t, resp)
	if !committed.OK || len(committed.Violations) != 1 {
		t.Errorf("commit = ok %v with %d violations, want ok with 1", committed.OK, len(committed.Violations))
	}
}

func TestSwapFailureKeepsSeats(t *testing.T) {
	ts := newTestServer(t)
	created := createPlan(t, ts)
	tbl := created.Document.Tables[0]
	base := ts.URL + "/v1/plans/" + created.ID

	postJSON(t, base+"/assign", assignRequest{TableID: tbl.ID, SeatID: tbl.Seats[0].ID, GuestID: "ada"}).Body.Close()

	// Lock the destination so the swap fails.
	postJSON(t, base+"/lock", lockRequest{TableID: tbl.ID, SeatID: tbl.Seats[2].ID, Locked: true}).Body.Close()

	resp := postJSON(t, base+"/swap", swapRequest{
		TableA: tbl.ID, SeatA: tbl.Seats[0].ID,
		TableB: tbl.ID, SeatB: tbl.Seats[2].ID,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("failed swap status = %d, want 422", resp.StatusCode)
	}

	got, err := http.Get(ts.URL + "/v1/plans/" + created.ID + "/")
	if err != nil {
		t.Fatal(err)
	}
	doc := decode[planResponse](t, got)
	if doc.Document.Tables[0].Seats[0].Guest != "ada" {
		t.Error("failed swap moved the guest")
	}
}

func TestAdjacentSeats(t *testing.T) {
	ts := newTestServer(t)
	created := createPlan(t, ts)
	tbl := created.Document.Tables[0]

	url := fmt.Sprintf("%s/v1/plans/%s/tables/%s/seats/%s/adjacent",
		ts.URL, created.ID, tbl.ID, tbl.Seats[0].ID)
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	got := decode[struct {
		SeatIDs []string `json:"seat_ids"`
	}](t, resp)
	if len(got.SeatIDs) != 2 {
		t.Errorf("adjacent seats = %v, want two neighbors", got.SeatIDs)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ts := newTestServer(t)
	created := createPlan(t, ts)
	tbl := created.Document.Tables[0]
	base := ts.URL + "/v1/plans/" + created.ID

	postJSON(t, base+"/assign", assignRequest{TableID: tbl.ID, SeatID: tbl.Seats[0].ID, GuestID: "ada"}).Body.Close()

	resp := postJSON(t, base+"/save", saveRequest{Name: "draft-1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	listResp, err := http.Get(ts.URL + "/v1/saved")
	if err != nil {
		t.Fatal(err)
	}
	listed := decode[struct {
		Names []string `json:"names"`
	}](t, listResp)
	if len(listed.Names) != 1 || listed.Names[0] != "draft-1" {
		t.Errorf("saved names = %v, want [draft-1]", listed.Names)
	}

	loadResp := postJSON(t, ts.URL+"/v1/saved/draft-1/load", struct{}{})
	if loadResp.StatusCode != http.StatusCreated {
		t.Fatalf("load status = %d, want 201", loadResp.StatusCode)
	}
	loaded := decode[planResponse](t, loadResp)
	if loaded.ID == created.ID {
		t.Error("loaded plan reuses the source session id")
	}
	var seated bool
	for _, s := range loaded.Document.Tables[0].Seats {
		if s.Guest == "ada" {
			seated = true
		}
	}
	if !seated {
		t.Error("loaded plan lost the assignment")
	}
}

func TestDeletePlan(t *testing.T) {
	ts := newTestServer(t)
	created := createPlan(t, ts)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/v1/plans/"+created.ID+"/", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	getResp, err := http.Get(ts.URL + "/v1/plans/" + created.ID + "/violations")
	if err != nil {
		t.Fatal(err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", getResp.StatusCode)
	}
}
