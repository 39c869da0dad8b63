package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"datepoll/internal/delivery/http/helpers"
	"datepoll/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submitResponseBody = `{"name":"bob","availability":[true,false]}`

func TestResponseController_SubmitResponse(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       submitResponseBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       `{"availability":[true,false]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "missing availability",
			body:       `{"name":"bob"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unknown event",
			body:       submitResponseBody,
			fakeErr:    domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "deadline passed",
			body:       submitResponseBody,
			fakeErr:    domain.ErrDeadlinePassed,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeDeadlinePassed,
		},
		{
			name:       "availability length mismatch",
			body:       submitResponseBody,
			fakeErr:    domain.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "service error",
			body:       submitResponseBody,
			fakeErr:    errors.New("db error"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{submitResponseErr: tt.fakeErr}
			ctrl := NewResponseController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/api/events/aB3dE6gH9k/responses", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("slug", "aB3dE6gH9k")
			rr := httptest.NewRecorder()

			ctrl.SubmitResponse(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "aB3dE6gH9k", fake.lastSubmitSlug)
				assert.Equal(t, "bob", fake.lastSubmitName)
				assert.Equal(t, []bool{true, false}, fake.lastSubmitAvail)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var resp domain.Response
				require.NoError(t, json.Unmarshal(dataBytes, &resp))
				assert.Equal(t, "resp-created", resp.ID)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestResponseController_SubmitResponse_SameNameTwiceIsAccepted(t *testing.T) {
	fake := &fakeEventService{}
	ctrl := NewResponseController(testLogger, fake)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/events/aB3dE6gH9k/responses", bytes.NewBufferString(submitResponseBody))
		req.Header.Set("Content-Type", "application/json")
		req.SetPathValue("slug", "aB3dE6gH9k")
		rr := httptest.NewRecorder()

		ctrl.SubmitResponse(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
	}
}

func TestResponseController_UpdateResponse(t *testing.T) {
	tests := []struct {
		name       string
		responseID string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			responseID: "resp-1",
			body:       `{"name":"bob","availability":[false,true]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown response",
			responseID: "missing",
			body:       submitResponseBody,
			fakeErr:    domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "deadline passed",
			responseID: "resp-1",
			body:       submitResponseBody,
			fakeErr:    domain.ErrDeadlinePassed,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeDeadlinePassed,
		},
		{
			name:       "missing name",
			responseID: "resp-1",
			body:       `{"availability":[true]}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{updateResponseErr: tt.fakeErr}
			ctrl := NewResponseController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPut, "/api/events/aB3dE6gH9k/responses/"+tt.responseID, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("slug", "aB3dE6gH9k")
			req.SetPathValue("responseID", tt.responseID)
			rr := httptest.NewRecorder()

			ctrl.UpdateResponse(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "aB3dE6gH9k", fake.lastUpdateRespSlug)
				assert.Equal(t, tt.responseID, fake.lastUpdateRespID)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var resp domain.Response
				require.NoError(t, json.Unmarshal(dataBytes, &resp))
				assert.Equal(t, "resp-1", resp.ID)
				assert.Equal(t, []bool{false, true}, resp.Availability)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}
