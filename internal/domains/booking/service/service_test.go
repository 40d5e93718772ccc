package service_test

import (
	"bytes"
	"context"
	"errors"
	"farmstay/config"
	"farmstay/infras/kafka"
	kafkaMocks "farmstay/infras/kafka/mocks"
	"farmstay/infras/otel/mocks"
	bookingMocks "farmstay/internal/domains/booking/mocks"
	"farmstay/internal/domains/booking/model"
	"farmstay/internal/domains/booking/model/dto"
	"farmstay/internal/domains/booking/service"
	farmhouseMocks "farmstay/internal/domains/farmhouse/mocks"
	farmhouseModel "farmstay/internal/domains/farmhouse/model"
	cacheMocks "farmstay/shared/cache/mocks"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/event"
	"farmstay/shared/failure"
	gModel "farmstay/shared/model"
	gRepo "farmstay/shared/repository"
	"farmstay/shared/timezone"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	farmhouse *farmhouseMocks.MockFarmhouse
	cache     *cacheMocks.MockRedisCache
	kafka     *kafkaMocks.MockClient
	svc       service.Booking
}

func newFixture(t *testing.T, kafkaEnabled bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	farmhouses := farmhouseMocks.NewMockFarmhouse(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.Booking = "farmstay.booking"

	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	client.EXPECT().Enabled().Return(kafkaEnabled).AnyTimes()

	return fixture{
		repo:      repo,
		farmhouse: farmhouses,
		cache:     redisCache,
		kafka:     client,
		svc:       service.New(repo, farmhouses, cfg, redisCache, mocks.NewOtel(), client),
	}
}

func (f fixture) miss() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
}

// inTx runs the transaction body directly.
func (f fixture) inTx() {
	f.repo.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sqlx.Tx) error) error {
			return fn(nil)
		})
}

func asUser(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func date(days int) string {
	return timezone.Today().AddDate(0, 0, days).Format(constant.DateOnlyFormat)
}

func sampleFarmhouse() farmhouseModel.Farmhouse {
	return farmhouseModel.Farmhouse{
		ID:            "f-1",
		OwnerID:       "o-1",
		Name:          "Mango Grove Retreat",
		PricePerNight: 4500,
		MaxGuests:     6,
		IsActive:      true,
	}
}

func sampleBooking(status string) model.Booking {
	checkIn := timezone.Today().AddDate(0, 0, 10)

	return model.Booking{
		ID:            "b-1",
		UserID:        "v-1",
		FarmhouseID:   "f-1",
		FarmhouseName: "Mango Grove Retreat",
		OwnerID:       "o-1",
		GuestName:     "Asha Patil",
		GuestEmail:    "asha@farmstay.test",
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 2),
		Guests:        4,
		TotalAmount:   9000,
		Status:        status,
		Metadata:      gModel.NewMetadata("v-1", timezone.Now()),
	}
}

func TestBookingService_Create(t *testing.T) {
	valid := dto.CreateBookingRequest{FarmhouseID: "f-1", CheckIn: date(10), CheckOut: date(13), Guests: 4}

	t.Run("creates a pending booking priced by nights", func(t *testing.T) {
		f := newFixture(t, false)
		f.inTx()

		f.farmhouse.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleFarmhouse(), nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				assert.Equal(t, "v-1", booking.UserID)
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Equal(t, 13500.0, booking.TotalAmount)

				return nil
			})

		res, err := f.svc.Create(asUser("v-1", constant.RoleVisitor), valid)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, "Mango Grove Retreat", res.FarmhouseName)
	})

	t.Run("overlap conflicts", func(t *testing.T) {
		f := newFixture(t, false)
		f.inTx()

		f.farmhouse.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleFarmhouse(), nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(asUser("v-1", constant.RoleVisitor), valid)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	farmhouseTests := []struct {
		name      string
		farmhouse func() farmhouseModel.Farmhouse
		wantCode  int
	}{
		{name: "missing farmhouse", farmhouse: func() farmhouseModel.Farmhouse { return farmhouseModel.Farmhouse{} }, wantCode: http.StatusNotFound},
		{name: "inactive farmhouse", farmhouse: func() farmhouseModel.Farmhouse {
			farmhouse := sampleFarmhouse()
			farmhouse.IsActive = false

			return farmhouse
		}, wantCode: http.StatusBadRequest},
		{name: "too many guests", farmhouse: func() farmhouseModel.Farmhouse {
			farmhouse := sampleFarmhouse()
			farmhouse.MaxGuests = 2

			return farmhouse
		}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range farmhouseTests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.inTx()

			f.farmhouse.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.farmhouse(), nil)

			_, err := f.svc.Create(asUser("v-1", constant.RoleVisitor), valid)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}

	dateTests := []struct {
		name string
		req  dto.CreateBookingRequest
	}{
		{name: "check_out before check_in", req: dto.CreateBookingRequest{FarmhouseID: "f-1", CheckIn: date(5), CheckOut: date(3), Guests: 2}},
		{name: "same day", req: dto.CreateBookingRequest{FarmhouseID: "f-1", CheckIn: date(5), CheckOut: date(5), Guests: 2}},
		{name: "check_in in the past", req: dto.CreateBookingRequest{FarmhouseID: "f-1", CheckIn: date(-1), CheckOut: date(2), Guests: 2}},
		{name: "malformed date", req: dto.CreateBookingRequest{FarmhouseID: "f-1", CheckIn: "tomorrow", CheckOut: date(2), Guests: 2}},
	}

	for _, tt := range dateTests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)

			_, err := f.svc.Create(asUser("v-1", constant.RoleVisitor), tt.req)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}

	t.Run("guest must sign in", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.svc.Create(context.Background(), valid)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("publishes booking.created", func(t *testing.T) {
		f := newFixture(t, true)
		f.inTx()

		published := make(chan kafka.Message, 1)

		f.farmhouse.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(sampleFarmhouse(), nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.kafka.EXPECT().
			SendMessages(gomock.Any(), "farmstay.booking", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				published <- messages[0]

				return nil
			})

		res, err := f.svc.Create(asUser("v-1", constant.RoleVisitor), valid)
		require.NoError(t, err)

		select {
		case message := <-published:
			assert.Equal(t, res.ID, message.Key)

			envelope, ok := message.Value.(event.Envelope[dto.Event])
			require.True(t, ok)
			assert.Equal(t, event.TypeBookingCreated, envelope.Type)
			assert.Equal(t, "o-1", envelope.Data.OwnerID)
		case <-time.After(time.Second):
			t.Fatal("booking.created was not published")
		}
	})
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "guest of the booking", ctx: asUser("v-1", constant.RoleVisitor)},
		{name: "owner of the farmhouse", ctx: asUser("o-1", constant.RoleOwner)},
		{name: "admin", ctx: asUser("a-1", constant.RoleAdmin)},
		{name: "someone else", ctx: asUser("v-2", constant.RoleVisitor), wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.miss()

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(model.StatusPending), nil)

			res, err := f.svc.Get(tt.ctx, "b-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b-1", res.ID)
		})
	}
}

func TestBookingService_Owner(t *testing.T) {
	f := newFixture(t, false)
	f.miss()

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "o-1", args["owner_id"])
			assert.NotContains(t, args, "user_id")

			return 1, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{sampleBooking(model.StatusPending)}, nil)

	res, err := f.svc.Owner(asUser("o-1", constant.RoleOwner), gDto.QueryParams{Page: 1, Limit: 10}, dto.FilterQuery{UserID: "v-9", Status: model.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		current  string
		next     string
		wantCode int
	}{
		{name: "owner confirms pending", ctx: asUser("o-1", constant.RoleOwner), current: model.StatusPending, next: model.StatusConfirmed},
		{name: "admin completes confirmed", ctx: asUser("a-1", constant.RoleAdmin), current: model.StatusConfirmed, next: model.StatusCompleted},
		{name: "pending cannot complete", ctx: asUser("o-1", constant.RoleOwner), current: model.StatusPending, next: model.StatusCompleted, wantCode: http.StatusBadRequest},
		{name: "cancelled is final", ctx: asUser("o-1", constant.RoleOwner), current: model.StatusCancelled, next: model.StatusConfirmed, wantCode: http.StatusBadRequest},
		{name: "other owner forbidden", ctx: asUser("o-2", constant.RoleOwner), current: model.StatusPending, next: model.StatusConfirmed, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(tt.current), nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
						assert.Equal(t, tt.next, fields[model.FieldStatus])

						_, args := filter.GetWhereClause()
						assert.Equal(t, tt.current, args["current_status"])

						return nil
					})
			}

			err := f.svc.UpdateStatus(tt.ctx, dto.UpdateStatusRequest{Status: tt.next}, "b-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestBookingService_UpdateStatus_LostRace(t *testing.T) {
	// kafka is enabled but nothing may be published: the guest cancelled first
	f := newFixture(t, true)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(model.StatusPending), nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("failed to update data (booking): %w", gRepo.ErrNoRowsAffected))

	err := f.svc.UpdateStatus(asUser("o-1", constant.RoleOwner), dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "b-1")
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("guest cancels", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(model.StatusConfirmed), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Cancel(asUser("v-1", constant.RoleVisitor), "b-1"))
	})

	t.Run("only the guest", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(model.StatusPending), nil)

		err := f.svc.Cancel(asUser("o-1", constant.RoleOwner), "b-1")
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(sampleBooking(model.StatusCompleted), nil)

		err := f.svc.Cancel(asUser("v-1", constant.RoleVisitor), "b-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_Delete(t *testing.T) {
	f := newFixture(t, false)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := f.svc.Delete(asUser("a-1", constant.RoleAdmin), "b-1")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Export(t *testing.T) {
	t.Run("owner export is scoped to own farmhouses", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "o-1", args["owner_id"])

				return []model.Booking{sampleBooking(model.StatusConfirmed)}, nil
			})

		res, err := f.svc.Export(asUser("o-1", constant.RoleOwner), dto.FilterQuery{OwnerID: "o-2"})
		require.NoError(t, err)
		assert.Contains(t, res.FileName, ".xlsx")

		workbook, err := excelize.OpenReader(bytes.NewReader(res.Data))
		require.NoError(t, err)

		rows, err := workbook.GetRows("Bookings")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Booking ID", rows[0][0])
		assert.Equal(t, "Mango Grove Retreat", rows[1][1])
		assert.Equal(t, model.StatusConfirmed, rows[1][9])
	})

	t.Run("visitors cannot export", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.svc.Export(asUser("v-1", constant.RoleVisitor), dto.FilterQuery{})
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}
