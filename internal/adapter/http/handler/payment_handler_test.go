package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/adapter/http/handler"
	"github.com/iho/tripledger/internal/adapter/http/handler/mocks"
	"github.com/iho/tripledger/internal/domain"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPaymentHandler_RecordPayment_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockPaymentService(ctrl)

	service.EXPECT().
		RecordManualPayment(gomock.Any(), "contrib-1", int64(100000)).
		Return(&domain.Contribution{
			ID:         "contrib-1",
			ExpenseID:  "exp-1",
			AmountDue:  250000,
			AmountPaid: 100000,
			Method:     domain.MethodManual,
		}, nil)

	h := handler.NewPaymentHandler(service)

	body, _ := json.Marshal(dto.RecordPaymentRequest{Amount: 100000})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/contributions/contrib-1/payments", bytes.NewReader(body)), "id", "contrib-1")
	rec := httptest.NewRecorder()

	h.RecordPayment(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ContributionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.AmountPaid != 100000 {
		t.Fatalf("expected 100000 paid, got %d", resp.AmountPaid)
	}
	if resp.Remaining != 150000 {
		t.Fatalf("expected 150000 remaining, got %d", resp.Remaining)
	}
}

func TestPaymentHandler_RecordPayment_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockPaymentService(ctrl)

	service.EXPECT().
		RecordManualPayment(gomock.Any(), "contrib-1", int64(-5)).
		Return(nil, domain.ErrInvalidAmount)

	h := handler.NewPaymentHandler(service)

	body, _ := json.Marshal(dto.RecordPaymentRequest{Amount: -5})
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/contributions/contrib-1/payments", bytes.NewReader(body)), "id", "contrib-1")
	rec := httptest.NewRecorder()

	h.RecordPayment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentHandler_SetPaid_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockPaymentService(ctrl)

	service.EXPECT().
		SetPaid(gomock.Any(), "contrib-1", int64(250000)).
		Return(&domain.Contribution{
			ID:         "contrib-1",
			AmountDue:  250000,
			AmountPaid: 250000,
		}, nil)

	h := handler.NewPaymentHandler(service)

	body, _ := json.Marshal(dto.SetPaidRequest{Amount: 250000})
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/contributions/contrib-1/paid", bytes.NewReader(body)), "id", "contrib-1")
	rec := httptest.NewRecorder()

	h.SetPaid(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ContributionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Settled {
		t.Fatal("expected contribution settled")
	}
}

func TestPaymentHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockPaymentService(ctrl)

	service.EXPECT().
		GetContribution(gomock.Any(), "missing").
		Return(nil, domain.ErrContributionNotFound)

	h := handler.NewPaymentHandler(service)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/contributions/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
