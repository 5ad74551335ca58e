package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"rollcall/internal/backend"
	"rollcall/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openScan(t *testing.T, sc *ScanController) string {
	t.Helper()
	rr := httptest.NewRecorder()
	sc.Open(rr, request(http.MethodPost, "/scan", `{"track":"Cyber Bootcamp","day":1}`))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var view scanView
	decode(t, rr, &view)
	assert.True(t, view.State.Accepting)
	return view.ID
}

func TestScanDetect_ReportsOutcomes(t *testing.T) {
	sc := NewScanController(&testutil.MockLogger{}, newScan(testBackend()))
	id := openScan(t, sc)

	rr := httptest.NewRecorder()
	sc.Detect(rr, request(http.MethodPost, "/scan/"+id+"/detect", `{"detections":[{"text":"A"},{"text":"","error":"blurry"}]}`, "id", id))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Outcomes []string `json:"outcomes"`
		State    struct {
			Collected []string `json:"collected"`
		} `json:"state"`
	}
	decode(t, rr, &resp)
	assert.Equal(t, []string{"accepted", "empty"}, resp.Outcomes)
	assert.Equal(t, []string{"A"}, resp.State.Collected)
}

func TestScanPauseToggle(t *testing.T) {
	sc := NewScanController(&testutil.MockLogger{}, newScan(testBackend()))
	id := openScan(t, sc)

	rr := httptest.NewRecorder()
	sc.Pause(rr, request(http.MethodPost, "/scan/"+id+"/pause", "", "id", id))
	require.Equal(t, http.StatusOK, rr.Code)
	var state map[string]any
	decode(t, rr, &state)
	assert.Equal(t, true, state["paused"])

	rr = httptest.NewRecorder()
	sc.Toggle(rr, request(http.MethodPost, "/scan/"+id+"/toggle", "", "id", id))
	decode(t, rr, &state)
	assert.Equal(t, false, state["paused"])

	rr = httptest.NewRecorder()
	sc.Resume(rr, request(http.MethodPost, "/scan/"+id+"/resume", "", "id", id))
	decode(t, rr, &state)
	assert.Equal(t, true, state["accepting"])
}

func TestScanSend(t *testing.T) {
	client := testBackend()
	sc := NewScanController(&testutil.MockLogger{}, newScan(client))
	id := openScan(t, sc)

	rr := httptest.NewRecorder()
	sc.Send(rr, request(http.MethodPost, "/scan/"+id+"/send", "", "id", id))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	sc.Detect(rr, request(http.MethodPost, "/scan/"+id+"/detect", `{"detections":[{"text":"A"}]}`, "id", id))
	require.Equal(t, http.StatusOK, rr.Code)
	time.Sleep(5 * time.Millisecond)
	rr = httptest.NewRecorder()
	sc.Detect(rr, request(http.MethodPost, "/scan/"+id+"/detect", `{"detections":[{"text":"B"}]}`, "id", id))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	sc.Send(rr, request(http.MethodPost, "/scan/"+id+"/send", "", "id", id))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"sent":2}`, rr.Body.String())
	require.Len(t, client.Barcodes, 1)
	assert.Equal(t, []string{"A", "B"}, client.Barcodes[0].Barcodes)

	rr = httptest.NewRecorder()
	sc.Show(rr, request(http.MethodGet, "/scan/"+id, "", "id", id))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestScanSend_UnexpectedErrorIs500(t *testing.T) {
	client := testBackend()
	client.BarcodesErr = errors.New("unexpected")
	sc := NewScanController(&testutil.MockLogger{}, newScan(client))
	id := openScan(t, sc)

	rr := httptest.NewRecorder()
	sc.Detect(rr, request(http.MethodPost, "/scan/"+id+"/detect", `{"detections":[{"text":"A"}]}`, "id", id))
	require.Equal(t, http.StatusOK, rr.Code)

	logger := &testutil.MockLogger{}
	sc.logger = logger
	rr = httptest.NewRecorder()
	sc.Send(rr, request(http.MethodPost, "/scan/"+id+"/send", "", "id", id))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 1, logger.Count("error"))
}

func TestScanClose(t *testing.T) {
	sc := NewScanController(&testutil.MockLogger{}, newScan(testBackend()))
	id := openScan(t, sc)

	rr := httptest.NewRecorder()
	sc.Close(rr, request(http.MethodPost, "/scan/"+id+"/close", "", "id", id))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	sc.Detect(rr, request(http.MethodPost, "/scan/"+id+"/detect", `{"detections":[]}`, "id", id))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestScanSend_BackendFailureKeepsSession(t *testing.T) {
	client := testBackend()
	client.BarcodesErr = &backend.HTTPError{Op: backend.OpBarcodes, Status: 404}
	sc := NewScanController(&testutil.MockLogger{}, newScan(client))
	id := openScan(t, sc)

	rr := httptest.NewRecorder()
	sc.Detect(rr, request(http.MethodPost, "/scan/"+id+"/detect", `{"detections":[{"text":"A"}]}`, "id", id))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	sc.Send(rr, request(http.MethodPost, "/scan/"+id+"/send", "", "id", id))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"error":"HTTP error! status: 404"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	sc.Show(rr, request(http.MethodGet, "/scan/"+id, "", "id", id))
	assert.Equal(t, http.StatusOK, rr.Code)
}
