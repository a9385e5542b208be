package http

import (
	"net/http"
	"time"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use case handlers the HTTP server dispatches to.
type Handlers struct {
	AddCartItem           commands.AddCartItemCommandHandler
	UpdateCartQuantity    commands.UpdateCartQuantityCommandHandler
	RemoveCartItem        commands.RemoveCartItemCommandHandler
	MergeGuestCart        commands.MergeGuestCartCommandHandler
	Checkout              commands.CheckoutCommandHandler
	CancelOrder           commands.CancelOrderCommandHandler
	UploadPrescription    commands.UploadPrescriptionCommandHandler
	ApprovePrescription   commands.ApprovePrescriptionCommandHandler
	RejectPrescription    commands.RejectPrescriptionCommandHandler
	ReuploadPrescription  commands.ReuploadPrescriptionCommandHandler
	AssignDriver          commands.AssignDriverCommandHandler
	StartDelivery         commands.StartDeliveryCommandHandler
	MarkDelivered         commands.MarkDeliveredCommandHandler
	ReportIssue           commands.ReportIssueCommandHandler
	AddDriver             commands.AddDriverCommandHandler
	SetDriverAvailability commands.SetDriverAvailabilityCommandHandler
	AddStockItem          commands.AddStockItemCommandHandler

	GetCapacity             queries.GetCapacityQueryHandler
	GetActiveDeliveries     queries.GetActiveDeliveriesQueryHandler
	GetPendingPrescriptions queries.GetPendingPrescriptionsQueryHandler
}

// Server exposes the order lifecycle engine over HTTP. It binds requests,
// resolves the caller into domain identities and dispatches to use cases;
// all rules live below it.
type Server struct {
	handlers Handlers
}

// NewServer creates an HTTP server over the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes wires the API onto the echo instance. Every route under
// /api/v1 goes through auth and a capability check.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1", auth)

	v1.POST("/cart/items", s.AddCartItem, Require(CapCartEdit))
	v1.PUT("/cart/items/:itemId", s.UpdateCartQuantity, Require(CapCartEdit))
	v1.DELETE("/cart/items/:itemId", s.RemoveCartItem, Require(CapCartEdit))
	v1.POST("/cart/merge", s.MergeGuestCart, Require(CapCartEdit))

	v1.POST("/checkout", s.Checkout, Require(CapOrderCreate))
	v1.POST("/orders/:id/cancel", s.CancelOrder, Require(CapOrderCancel))
	v1.POST("/orders/:id/assign", s.AssignDriver, Require(CapDeliveryAssign))

	v1.POST("/prescriptions", s.UploadPrescription, Require(CapCartEdit))
	v1.POST("/prescriptions/:id/approve", s.ApprovePrescription, Require(CapPrescriptionReview))
	v1.POST("/prescriptions/:id/reject", s.RejectPrescription, Require(CapPrescriptionReview))
	v1.POST("/prescriptions/:id/reupload", s.ReuploadPrescription, Require(CapCartEdit))
	v1.GET("/prescriptions/pending", s.GetPendingPrescriptions, Require(CapPrescriptionReview))

	v1.POST("/deliveries/:id/start", s.StartDelivery, Require(CapDeliveryDrive))
	v1.POST("/deliveries/:id/delivered", s.MarkDelivered, Require(CapDeliveryDrive))
	v1.POST("/deliveries/:id/issue", s.ReportIssue, Require(CapDeliveryDrive))
	v1.GET("/deliveries/active", s.GetActiveDeliveries, Require(CapDeliveryAssign))
	v1.GET("/capacity", s.GetCapacity, Require(CapDeliveryAssign))

	v1.POST("/drivers", s.AddDriver, Require(CapDeliveryAssign))
	v1.PATCH("/drivers/:id/availability", s.SetDriverAvailability, Require(CapDeliveryDrive))

	v1.POST("/items", s.AddStockItem, Require(CapCatalogEdit))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type addCartItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// AddCartItem handles POST /api/v1/cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	var req addCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	itemID, err := kernel.UUIDFromString(req.ItemID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid item id")
	}

	owner, err := actorFrom(ctx).OwnerRef()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddCartItemCommand(owner, itemID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type updateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartQuantity handles PUT /api/v1/cart/items/:itemId.
func (s *Server) UpdateCartQuantity(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid item id")
	}

	var req updateCartQuantityRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	owner, err := actorFrom(ctx).OwnerRef()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateCartQuantityCommand(owner, itemID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.UpdateCartQuantity.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:itemId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid item id")
	}

	owner, err := actorFrom(ctx).OwnerRef()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemoveCartItemCommand(owner, itemID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.RemoveCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type mergeCartRequest struct {
	SessionToken string `json:"sessionToken"`
}

// MergeGuestCart handles POST /api/v1/cart/merge. The caller must be an
// authenticated customer; the body names the guest session to absorb.
func (s *Server) MergeGuestCart(ctx echo.Context) error {
	var req mergeCartRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	actor := actorFrom(ctx)
	if actor.Session != "" {
		return respondBadRequest(ctx, "Merging requires an authenticated customer")
	}

	cmd, err := commands.NewMergeGuestCartCommand(actor.SubjectID, req.SessionToken)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.MergeGuestCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type checkoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
	WindowStart     string `json:"windowStart"`
	WindowEnd       string `json:"windowEnd"`
}

type checkoutResponse struct {
	OrderID string `json:"orderId"`
}

// Checkout handles POST /api/v1/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	var req checkoutRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	owner, err := actorFrom(ctx).OwnerRef()
	if err != nil {
		return respondError(ctx, err)
	}

	window, err := kernel.NewDeliveryWindow(req.WindowStart, req.WindowEnd)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCheckoutCommand(orderID, owner, req.DeliveryAddress, window)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.Checkout.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, checkoutResponse{OrderID: orderID.String()})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id")
	}

	owner, err := actorFrom(ctx).OwnerRef()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, owner)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type uploadPrescriptionRequest struct {
	FileRef string  `json:"fileRef"`
	OrderID *string `json:"orderId,omitempty"`
}

type uploadPrescriptionResponse struct {
	PrescriptionID string `json:"prescriptionId"`
}

// UploadPrescription handles POST /api/v1/prescriptions.
func (s *Server) UploadPrescription(ctx echo.Context) error {
	var req uploadPrescriptionRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	actor := actorFrom(ctx)
	if actor.Session != "" {
		return respondBadRequest(ctx, "Prescriptions require an authenticated customer")
	}

	var orderID *kernel.UUID
	if req.OrderID != nil {
		parsed, err := kernel.UUIDFromString(*req.OrderID)
		if err != nil {
			return respondBadRequest(ctx, "Invalid order id")
		}
		orderID = &parsed
	}

	prescriptionID := kernel.NewUUID()

	cmd, err := commands.NewUploadPrescriptionCommand(prescriptionID, actor.SubjectID, req.FileRef, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.UploadPrescription.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, uploadPrescriptionResponse{
		PrescriptionID: prescriptionID.String(),
	})
}

// ApprovePrescription handles POST /api/v1/prescriptions/:id/approve.
func (s *Server) ApprovePrescription(ctx echo.Context) error {
	prescriptionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid prescription id")
	}

	cmd, err := commands.NewApprovePrescriptionCommand(prescriptionID, actorFrom(ctx).SubjectID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ApprovePrescription.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type rejectPrescriptionRequest struct {
	Reason string `json:"reason"`
}

// RejectPrescription handles POST /api/v1/prescriptions/:id/reject.
func (s *Server) RejectPrescription(ctx echo.Context) error {
	prescriptionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid prescription id")
	}

	var req rejectPrescriptionRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRejectPrescriptionCommand(prescriptionID, actorFrom(ctx).SubjectID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.RejectPrescription.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reuploadPrescriptionRequest struct {
	FileRef string `json:"fileRef"`
}

// ReuploadPrescription handles POST /api/v1/prescriptions/:id/reupload.
func (s *Server) ReuploadPrescription(ctx echo.Context) error {
	prescriptionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid prescription id")
	}

	var req reuploadPrescriptionRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	actor := actorFrom(ctx)
	if actor.Session != "" {
		return respondBadRequest(ctx, "Prescriptions require an authenticated customer")
	}

	cmd, err := commands.NewReuploadPrescriptionCommand(prescriptionID, actor.SubjectID, req.FileRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ReuploadPrescription.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignDriverRequest struct {
	DriverID string `json:"driverId"`
}

type assignDriverResponse struct {
	DeliveryID string `json:"deliveryId"`
}

// AssignDriver handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id")
	}

	var req assignDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid driver id")
	}

	deliveryID := kernel.NewUUID()

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID, deliveryID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, assignDriverResponse{DeliveryID: deliveryID.String()})
}

type startDeliveryRequest struct {
	ETA   time.Time `json:"eta"`
	Notes string    `json:"notes"`
}

// StartDelivery handles POST /api/v1/deliveries/:id/start.
func (s *Server) StartDelivery(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid delivery id")
	}

	var req startDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewStartDeliveryCommand(deliveryID, actorFrom(ctx).SubjectID, req.ETA, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.StartDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type markDeliveredRequest struct {
	RecipientName string `json:"recipientName"`
	ProofRef      string `json:"proofRef"`
}

// MarkDelivered handles POST /api/v1/deliveries/:id/delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid delivery id")
	}

	var req markDeliveredRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkDeliveredCommand(
		deliveryID, actorFrom(ctx).SubjectID, req.RecipientName, req.ProofRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.MarkDelivered.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reportIssueRequest struct {
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
}

// ReportIssue handles POST /api/v1/deliveries/:id/issue.
func (s *Server) ReportIssue(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid delivery id")
	}

	var req reportIssueRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportIssueCommand(
		deliveryID, actorFrom(ctx).SubjectID, req.IssueType, req.Description)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.ReportIssue.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type addDriverRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	ServiceArea string `json:"serviceArea"`
}

type addDriverResponse struct {
	DriverID string `json:"driverId"`
}

// AddDriver handles POST /api/v1/drivers.
func (s *Server) AddDriver(ctx echo.Context) error {
	var req addDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	driverID := kernel.NewUUID()

	cmd, err := commands.NewAddDriverCommand(driverID, req.Name, req.Phone, req.ServiceArea)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.AddDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, addDriverResponse{DriverID: driverID.String()})
}

type setAvailabilityRequest struct {
	Available bool `json:"available"`
}

// SetDriverAvailability handles PATCH /api/v1/drivers/:id/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid driver id")
	}

	var req setAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(driverID, req.Available)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.SetDriverAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type addStockItemRequest struct {
	Name                 string `json:"name"`
	UnitPriceCents       int64  `json:"unitPriceCents"`
	QuantityOnHand       int    `json:"quantityOnHand"`
	UnitWeightGrams      int    `json:"unitWeightGrams"`
	RequiresPrescription bool   `json:"requiresPrescription"`
}

type addStockItemResponse struct {
	ItemID string `json:"itemId"`
}

// AddStockItem handles POST /api/v1/items.
func (s *Server) AddStockItem(ctx echo.Context) error {
	var req addStockItemRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	price, err := kernel.NewMoney(req.UnitPriceCents)
	if err != nil {
		return respondError(ctx, err)
	}

	itemID := kernel.NewUUID()

	cmd, err := commands.NewAddStockItemCommand(
		itemID, req.Name, price, req.QuantityOnHand, req.UnitWeightGrams, req.RequiresPrescription)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.handlers.AddStockItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, addStockItemResponse{ItemID: itemID.String()})
}

type capacitySlotResponse struct {
	Window          string `json:"window"`
	Driver          string `json:"driver,omitempty"`
	OrderCount      int    `json:"orderCount"`
	CapacityPercent int    `json:"capacityPercent"`
}

// GetCapacity handles GET /api/v1/capacity.
func (s *Server) GetCapacity(ctx echo.Context) error {
	query := queries.NewGetCapacityQuery()

	slots, err := s.handlers.GetCapacity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]capacitySlotResponse, len(slots))
	for i, slot := range slots {
		response[i] = capacitySlotResponse{
			Window:          slot.Window,
			Driver:          slot.Driver,
			OrderCount:      slot.OrderCount,
			CapacityPercent: slot.CapacityPercent,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type activeDeliveryResponse struct {
	ID          string     `json:"id"`
	OrderNumber string     `json:"orderNumber"`
	DriverName  string     `json:"driverName"`
	Status      string     `json:"status"`
	ETA         *time.Time `json:"eta,omitempty"`
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	query := queries.NewGetActiveDeliveriesQuery()

	runs, err := s.handlers.GetActiveDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]activeDeliveryResponse, len(runs))
	for i, run := range runs {
		response[i] = activeDeliveryResponse{
			ID:          run.ID.String(),
			OrderNumber: run.OrderNumber,
			DriverName:  run.DriverName,
			Status:      run.Status,
			ETA:         run.ETA,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type pendingPrescriptionResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	FileRef    string    `json:"fileRef"`
	OrderID    *string   `json:"orderId,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// GetPendingPrescriptions handles GET /api/v1/prescriptions/pending.
func (s *Server) GetPendingPrescriptions(ctx echo.Context) error {
	query := queries.NewGetPendingPrescriptionsQuery()

	pending, err := s.handlers.GetPendingPrescriptions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]pendingPrescriptionResponse, len(pending))
	for i, p := range pending {
		item := pendingPrescriptionResponse{
			ID:         p.ID.String(),
			CustomerID: p.CustomerID.String(),
			FileRef:    p.FileRef,
			UploadedAt: p.UploadedAt,
		}
		if p.OrderID != nil {
			orderID := p.OrderID.String()
			item.OrderID = &orderID
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}
