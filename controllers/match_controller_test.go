package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adspot_server/services"

	"github.com/stretchr/testify/assert"
)

func TestHandleGetNextCandidateRequiresUser(t *testing.T) {
	controller := NewMatchController(&services.MatchService{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/match/next", nil)

	controller.HandleGetNextCandidate(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandleSwipeRejectsBadRequests(t *testing.T) {
	controller := NewMatchController(&services.MatchService{})

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"missing user", `{"targetBusinessId":"biz-1","direction":"left"}`, http.StatusUnauthorized},
		{"missing target", `{"userId":"user-1","direction":"left"}`, http.StatusBadRequest},
		{"missing direction", `{"userId":"user-1","targetBusinessId":"biz-1"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/api/match/swipe", strings.NewReader(tc.body))

			controller.HandleSwipe(recorder, request)

			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}

func TestWriteServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrMissingUserID, http.StatusUnauthorized},
		{services.ErrNotParticipant, http.StatusForbidden},
		{services.ErrItemNotFound, http.StatusNotFound},
		{services.ErrInvalidDirection, http.StatusBadRequest},
		{services.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: password must be at least 8 characters", services.ErrInvalidInput), http.StatusBadRequest},
		{services.ErrNoBusiness, http.StatusBadRequest},
		{services.ErrEmailTaken, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		writeServiceError(recorder, tc.err)
		assert.Equal(t, tc.status, recorder.Code, "unexpected status for %v", tc.err)
	}
}

func TestWriteServiceErrorSeesWrappedSentinels(t *testing.T) {
	recorder := httptest.NewRecorder()
	writeServiceError(recorder, errors.New("wrapped: "+services.ErrItemNotFound.Error()))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code, "string matching must not happen")

	recorder = httptest.NewRecorder()
	wrapped := errors.Join(errors.New("context"), services.ErrItemNotFound)
	writeServiceError(recorder, wrapped)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
