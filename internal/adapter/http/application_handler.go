package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"p2p-lending-ledger/internal/adapter/middleware"
	"p2p-lending-ledger/internal/usecase/application"
	"p2p-lending-ledger/internal/usecase/disbursement"
	"p2p-lending-ledger/internal/usecase/review"
)

// ApplicationHandler serves the whole application lifecycle: submission by
// the borrower, review, and funding by a lender.
type ApplicationHandler struct {
	apps    *application.Usecase
	reviews *review.Usecase
	funding *disbursement.Usecase
}

func NewApplicationHandler(apps *application.Usecase, reviews *review.Usecase, funding *disbursement.Usecase) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, reviews: reviews, funding: funding}
}

type createApplicationReq struct {
	ProductID string `json:"product_id" validate:"required,hex32"`
	Amount    string `json:"amount"     validate:"required,decimal,dec2,positive"`
	Purpose   string `json:"purpose"    validate:"max=255"`
}

type rejectReq struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	amount, _ := decimal.NewFromString(req.Amount)
	in := application.CreateInput{
		BorrowerID: middleware.UserID(c),
		ProductID:  req.ProductID,
		Amount:     amount,
	}
	if p := strings.TrimSpace(req.Purpose); p != "" {
		in.Purpose = &p
	}
	dto, err := h.apps.Create(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	appID, ok := pathID(c, "application_id")
	if !ok {
		return badRequest(c, "invalid application_id path param")
	}
	dto, err := h.apps.Get(c.Request().Context(), appID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Cancel(c echo.Context) error {
	appID, ok := pathID(c, "application_id")
	if !ok {
		return badRequest(c, "invalid application_id path param")
	}
	dto, err := h.apps.Cancel(c.Request().Context(), middleware.UserID(c), appID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	appID, ok := pathID(c, "application_id")
	if !ok {
		return badRequest(c, "invalid application_id path param")
	}
	dto, err := h.reviews.Approve(c.Request().Context(), review.ReviewInput{
		ReviewerID:    middleware.UserID(c),
		ApplicationID: appID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	appID, ok := pathID(c, "application_id")
	if !ok {
		return badRequest(c, "invalid application_id path param")
	}
	var req rejectReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.reviews.Reject(c.Request().Context(), review.ReviewInput{
		ReviewerID:    middleware.UserID(c),
		ApplicationID: appID,
		Reason:        req.Reason,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Disburse funds an approved application from the calling lender's wallet.
func (h *ApplicationHandler) Disburse(c echo.Context) error {
	appID, ok := pathID(c, "application_id")
	if !ok {
		return badRequest(c, "invalid application_id path param")
	}
	dto, err := h.funding.Disburse(c.Request().Context(), disbursement.DisburseInput{
		ApplicationID: appID,
		LenderID:      middleware.UserID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
