package service

import (
	"context"
	"farmstay/internal/domains/booking/model"
	"farmstay/internal/domains/booking/model/dto"
	"farmstay/shared"
	"farmstay/shared/constant"
	gDto "farmstay/shared/dto"
	"farmstay/shared/failure"
	"farmstay/shared/timezone"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet   = "Bookings"
	exportMaxRows = 10000
)

var exportHeaders = []any{
	"Booking ID", "Farmhouse", "Guest", "Guest Email", "Check-in", "Check-out",
	"Nights", "Guests", "Total Amount", "Status", "Created At",
}

func (s *serviceImpl) Export(ctx context.Context, query dto.FilterQuery) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	switch shared.Role(ctx) {
	case constant.RoleAdmin:
	case constant.RoleOwner:
		query.OwnerID = shared.Actor(ctx)
	default:
		return res, failure.Forbidden("only owners and admins can export bookings")
	}

	params := gDto.QueryParams{Page: 1, Limit: exportMaxRows, SortBy: model.TableName + "." + model.FieldCheckIn, SortDir: gDto.SortDirAsc}

	bookings, err := s.repo.GetAll(ctx, params, dto.Filter(query))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return res, fmt.Errorf("failed to get bookings for export: %w", err)
	}

	data, err := renderWorkbook(bookings)
	if err != nil {
		log.Error().Err(err).Msg("failed to render bookings workbook")

		return res, fmt.Errorf("failed to render bookings workbook: %w", err)
	}

	res.FileName = fmt.Sprintf("bookings_%s.xlsx", timezone.Now().Format("20060102_150405"))
	res.Data = data

	return res, nil
}

func renderWorkbook(bookings []model.Booking) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := file.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		_ = file.SetCellStyle(exportSheet, "A1", "K1", headerStyle)
	}

	for i, booking := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}

		row := []any{
			booking.ID,
			booking.FarmhouseName,
			booking.GuestName,
			booking.GuestEmail,
			booking.CheckIn.Format(constant.DateOnlyFormat),
			booking.CheckOut.Format(constant.DateOnlyFormat),
			timezone.Nights(booking.CheckIn, booking.CheckOut),
			booking.Guests,
			booking.TotalAmount,
			booking.Status,
			timezone.Format(booking.CreatedAt, constant.DateFormat),
		}

		if err = file.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = file.SetColWidth(exportSheet, "A", "A", 38)
	_ = file.SetColWidth(exportSheet, "B", "D", 25)
	_ = file.SetColWidth(exportSheet, "E", "K", 14)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
