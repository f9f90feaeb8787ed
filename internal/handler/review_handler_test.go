package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"floralshop/internal/auth"
	"floralshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const reviewsPattern = "/api/products/{id}/reviews"

func serveReviews(h *ReviewHandler, req *http.Request) *httptest.ResponseRecorder {
	return serve(req.Method, reviewsPattern, h.Reviews, req)
}

func TestReviewHandler_List(t *testing.T) {
	mockService := new(MockReviewService)
	mockService.On("ListReviews", mock.Anything, "P1").Return([]model.Review{{UserID: "U1", Rating: 4, Comment: "lovely"}}, nil)
	mockService.On("ListReviews", mock.Anything, "P9").Return(nil, model.ErrProductNotFound)
	handler := NewReviewHandler(mockService, zerolog.Nop())

	w := serveReviews(handler, httptest.NewRequest(http.MethodGet, "/api/products/P1/reviews", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var reviews []model.Review
	require.NoError(t, json.NewDecoder(w.Body).Decode(&reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "lovely", reviews[0].Comment)

	w = serveReviews(handler, httptest.NewRequest(http.MethodGet, "/api/products/P9/reviews", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_Submit(t *testing.T) {
	who := &auth.Identity{UserID: "U1", Name: "Uma"}

	tests := []struct {
		name           string
		who            *auth.Identity
		body           string
		mockReturn     *model.ReviewResponse
		mockError      error
		expectService  bool
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "First review is created",
			who:            who,
			body:           `{"rating":4,"comment":"lovely"}`,
			mockReturn:     &model.ReviewResponse{Message: "Review submitted", Created: true, NumReviews: 1, Rating: 4},
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Second review by same user is an update",
			who:            who,
			body:           `{"rating":2,"comment":"wilted"}`,
			mockReturn:     &model.ReviewResponse{Message: "Review updated", NumReviews: 1, Rating: 2},
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Anonymous",
			body:           `{"rating":4,"comment":"lovely"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   model.ErrCodeUnauthorised,
		},
		{
			name:           "Invalid JSON",
			who:            who,
			body:           `{"rating":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Missing comment",
			who:            who,
			body:           `{"rating":4,"comment":""}`,
			mockError:      model.ErrMissingComment,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeMissingComment,
		},
		{
			name:           "Unknown product",
			who:            who,
			body:           `{"rating":4,"comment":"lovely"}`,
			mockError:      model.ErrProductNotFound,
			expectService:  true,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReviewService)
			if tt.expectService {
				var req model.ReviewRequest
				require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
				mockService.On("SubmitReview", mock.Anything, "P1", tt.who, req).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/products/P1/reviews", strings.NewReader(tt.body))
			if tt.who != nil {
				req = withIdentity(req, tt.who)
			}
			w := serveReviews(NewReviewHandler(mockService, zerolog.Nop()), req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			} else {
				var resp model.ReviewResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, *tt.mockReturn, resp)
			}

			if !tt.expectService {
				mockService.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestReviewHandler_OtherMethods(t *testing.T) {
	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			mockService := new(MockReviewService)
			w := serveReviews(NewReviewHandler(mockService, zerolog.Nop()),
				httptest.NewRequest(method, "/api/products/P1/reviews", nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp model.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "Method not allowed", resp.Message)
		})
	}
}
