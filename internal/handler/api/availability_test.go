//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/sakib-101-git/Sport-Zen-sub000/internal/domain/availability"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/api"
	resdto "github.com/sakib-101-git/Sport-Zen-sub000/internal/handler/dto/response"
	"github.com/sakib-101-git/Sport-Zen-sub000/internal/pkg/errs"
	"github.com/sakib-101-git/Sport-Zen-sub000/tests/common/httptest"
	queriesmock "github.com/sakib-101-git/Sport-Zen-sub000/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/availability", s.handler.Grid)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

// ================================================================================
// TestGrid
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestGrid() {
	group := uuid.New()
	profile := uuid.New()
	url := "/availability?conflict_group_id=" + group.String() + "&pricing_profile_id=" + profile.String() + "&date=2025-06-03"
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	start := day.Add(18 * time.Hour)

	s.Run("success: returns the classified slots", func() {
		s.mockQueries.EXPECT().Grid(gomock.Any(), group, profile, day).Return(&availability.Grid{
			ConflictGroupID:  group,
			PricingProfileID: profile,
			Date:             day,
			Slots: []availability.Slot{{
				Start:           start,
				End:             start.Add(time.Hour),
				BlockedEnd:      start.Add(70 * time.Minute),
				DurationMinutes: 60,
				Status:          availability.SlotBooked,
				Price:           1500,
				Peak:            true,
			}},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2025-06-03", body.Date)
		s.Require().Len(body.Slots, 1)
		s.Equal("booked", body.Slots[0].Status)
		s.Equal(int64(1500), body.Slots[0].Price)
		s.True(body.Slots[0].Peak)
		s.True(start.Add(70 * time.Minute).Equal(body.Slots[0].BlockedEndAt))
	})

	s.Run("error: 400 Bad Request on malformed query", func() {
		cases := map[string]string{
			"missing date":       "/availability?conflict_group_id=" + group.String() + "&pricing_profile_id=" + profile.String(),
			"malformed date":     "/availability?conflict_group_id=" + group.String() + "&pricing_profile_id=" + profile.String() + "&date=03-06-2025",
			"malformed group id": "/availability?conflict_group_id=court&pricing_profile_id=" + profile.String() + "&date=2025-06-03",
			"missing profile id": "/availability?conflict_group_id=" + group.String() + "&date=2025-06-03",
		}
		for name, target := range cases {
			s.Run(name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, target, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "are required")
			})
		}
	})

	s.Run("error: 404 Not Found for an unknown pricing profile", func() {
		s.mockQueries.EXPECT().Grid(gomock.Any(), group, profile, day).Return(nil, errs.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})
}
