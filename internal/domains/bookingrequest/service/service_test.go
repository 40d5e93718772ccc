package service_test

import (
	"context"
	"errors"
	"farmstay/config"
	"farmstay/infras/kafka"
	kafkaMocks "farmstay/infras/kafka/mocks"
	"farmstay/infras/otel/mocks"
	requestMocks "farmstay/internal/domains/bookingrequest/mocks"
	"farmstay/internal/domains/bookingrequest/model"
	"farmstay/internal/domains/bookingrequest/model/dto"
	"farmstay/internal/domains/bookingrequest/service"
	cacheMocks "farmstay/shared/cache/mocks"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/event"
	"farmstay/shared/failure"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *requestMocks.MockBookingRequest
	cache *cacheMocks.MockRedisCache
	kafka *kafkaMocks.MockClient
	svc   service.BookingRequest
}

func newFixture(t *testing.T, kafkaEnabled bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := requestMocks.NewMockBookingRequest(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.BookingRequest = "farmstay.booking_request"

	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	client.EXPECT().Enabled().Return(kafkaEnabled).AnyTimes()

	return fixture{
		repo:  repo,
		cache: redisCache,
		kafka: client,
		svc:   service.New(repo, cfg, redisCache, mocks.NewOtel(), client),
	}
}

func validRequest() dto.CreateRequest {
	return dto.CreateRequest{
		Name:     "Rohan Mehta",
		Phone:    "+91 98200 00000",
		Email:    "rohan@farmstay.test",
		CheckIn:  "2030-03-10",
		CheckOut: "2030-03-12",
		Guests:   8,
	}
}

func TestBookingRequestService_Create(t *testing.T) {
	t.Run("stores a new request and publishes it", func(t *testing.T) {
		f := newFixture(t, true)

		published := make(chan kafka.Message, 1)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req model.BookingRequest) error {
				assert.Equal(t, model.StatusNew, req.Status)
				assert.Equal(t, constant.ContextGuest, req.CreatedBy)
				assert.Nil(t, req.FarmhouseID)

				return nil
			})
		f.kafka.EXPECT().
			SendMessages(gomock.Any(), "farmstay.booking_request", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				published <- messages[0]

				return nil
			})

		res, err := f.svc.Create(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "2030-03-10", res.CheckIn)
		assert.Equal(t, model.StatusNew, res.Status)

		select {
		case message := <-published:
			envelope, ok := message.Value.(event.Envelope[dto.Event])
			require.True(t, ok)
			assert.Equal(t, event.TypeBookingRequestCreated, envelope.Type)
			assert.Equal(t, "rohan@farmstay.test", envelope.Data.Email)
		case <-time.After(time.Second):
			t.Fatal("booking_request.created was not published")
		}
	})

	t.Run("check_out must follow check_in", func(t *testing.T) {
		f := newFixture(t, false)

		req := validRequest()
		req.CheckOut = req.CheckIn

		_, err := f.svc.Create(context.Background(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown farmhouse", func(t *testing.T) {
		f := newFixture(t, false)

		farmhouseID := "5b1e8f7a-4c1f-4c59-9a55-0d2b7f1c9e11"
		req := validRequest()
		req.FarmhouseID = &farmhouseID

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})

		_, err := f.svc.Create(context.Background(), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingRequestService_GetAll(t *testing.T) {
	f := newFixture(t, false)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(21, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.BookingRequest, error) {
			assert.Equal(t, "booking_requests.created_at", params.SortBy)

			return []model.BookingRequest{{ID: "r-1", Status: model.StatusNew}}, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, dto.Filter(model.StatusNew, ""))
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, "r-1", res.BookingRequests[0].ID)
}

func TestBookingRequestService_UpdateStatus(t *testing.T) {
	t.Run("updates", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusContacted, fields[model.FieldStatus])

				return nil
			})

		require.NoError(t, f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusContacted}, "r-1"))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusClosed}, "r-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingRequestService_Delete(t *testing.T) {
	f := newFixture(t, false)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), "r-1"))
}
