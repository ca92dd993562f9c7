package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/procurement"
	"github.com/sppg/backend/internal/domain/shared"
)

// Notifier delivers best-effort notifications for workflow events. Sending
// happens outside the business transaction and never fails it.
type Notifier interface {
	Broadcast(ctx context.Context, tenantID uuid.UUID, subject, body string)
}

// Service handles the procurement order lifecycle: ordering, receiving,
// quality control, acceptance into inventory, rejection and payments.
type Service struct {
	repo     procurement.Repository
	qcRepo   procurement.QualityControlRepository
	txScope  TransactionScope
	notifier Notifier
}

// NewService creates a procurement Service
func NewService(repo procurement.Repository, qcRepo procurement.QualityControlRepository, txScope TransactionScope, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		qcRepo:   qcRepo,
		txScope:  txScope,
		notifier: notifier,
	}
}

// CreateOrder creates a draft order. When a plan is linked the order total is
// allocated from the plan budget in the same transaction.
func (s *Service) CreateOrder(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	exists, err := s.repo.ExistsByOrderNumber(ctx, tenantID, req.OrderNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Order with this number already exists")
	}

	var response *OrderResponse
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		supplier, err := repos.SupplierRepo().FindByIDForUpdate(ctx, tenantID, req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.CanReceiveOrders() {
			return shared.NewDomainError("SUPPLIER_UNAVAILABLE", "Supplier cannot receive new orders")
		}

		order, err := procurement.NewProcurement(tenantID, req.OrderNumber, supplier.ID, supplier.Name)
		if err != nil {
			return err
		}
		for _, line := range req.Items {
			if _, err := order.AddItem(line.InventoryItemID, line.ItemCode, line.ItemName, line.Unit, line.Quantity, line.UnitPrice); err != nil {
				return err
			}
		}
		if err := order.SetCharges(req.Discount, req.Tax, req.Shipping); err != nil {
			return err
		}
		order.SetPaymentDue(req.PaymentDue)
		order.SetExpectedDelivery(req.ExpectedDelivery)

		if req.PlanID != nil {
			plan, err := repos.PlanRepo().FindByIDForUpdate(ctx, tenantID, *req.PlanID)
			if err != nil {
				return err
			}
			if err := plan.AllocateBudget(order.TotalAmount); err != nil {
				return err
			}
			if err := order.LinkPlan(plan.ID); err != nil {
				return err
			}
			if err := repos.PlanRepo().Save(ctx, plan); err != nil {
				return err
			}
		}

		supplier.RecordOrderPlaced()
		if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
			return err
		}
		if err := repos.ProcurementRepo().Save(ctx, order); err != nil {
			return err
		}
		response = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetOrder loads one order
func (s *Service) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ListOrders returns a paginated order listing
func (s *Service) ListOrders(ctx context.Context, tenantID uuid.UUID, f ListOrdersFilter) (*shared.Paginated[OrderResponse], error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	filter.Search = f.Search
	filter.OrderBy = f.OrderBy
	filter.OrderDir = f.OrderDir
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}

	orders, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, *toOrderResponse(&orders[idx]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// SubmitOrder moves a draft to pending approval
func (s *Service) SubmitOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.mutateOrder(ctx, tenantID, orderID, func(order *procurement.Procurement) error {
		return order.Submit()
	})
}

// ApproveOrder approves a pending order
func (s *Service) ApproveOrder(ctx context.Context, tenantID, orderID, approverID uuid.UUID) (*OrderResponse, error) {
	return s.mutateOrder(ctx, tenantID, orderID, func(order *procurement.Procurement) error {
		return order.Approve(approverID)
	})
}

// MarkOrdered marks an approved order as sent to the supplier
func (s *Service) MarkOrdered(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	return s.mutateOrder(ctx, tenantID, orderID, func(order *procurement.Procurement) error {
		return order.MarkOrdered()
	})
}

func (s *Service) mutateOrder(ctx context.Context, tenantID, orderID uuid.UUID, mutate func(*procurement.Procurement) error) (*OrderResponse, error) {
	order, err := s.repo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if err := mutate(order); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// RecordReceipt records a goods receipt against an ordered procurement
func (s *Service) RecordReceipt(ctx context.Context, tenantID, orderID uuid.UUID, req RecordReceiptRequest) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.ProcurementRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		lines := make([]procurement.ReceiptLine, 0, len(req.Lines))
		for _, l := range req.Lines {
			lines = append(lines, procurement.ReceiptLine{
				ItemID:           l.ItemID,
				ReceivedQuantity: l.ReceivedQuantity,
				BatchNumber:      l.BatchNumber,
				ExpiryDate:       l.ExpiryDate,
			})
		}
		if err := order.RecordReceipt(req.ReceiptNumber, req.Photos, req.TransportCost, req.ReceivedAt, lines); err != nil {
			return err
		}
		if err := repos.ProcurementRepo().Save(ctx, order); err != nil {
			return err
		}
		response = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// DeleteReceipt reverts a recorded receipt. Once any stock movement was
// posted for the procurement the receipt is part of inventory history and
// deletion is refused.
func (s *Service) DeleteReceipt(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.ProcurementRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		posted, err := repos.MovementRepo().CountByReference(ctx, tenantID, inventory.ReferenceProcurement, order.OrderNumber)
		if err != nil {
			return err
		}
		if posted > 0 {
			return shared.NewDomainError("RECEIPT_LOCKED",
				fmt.Sprintf("Cannot delete receipt: %d stock movements already posted", posted))
		}
		if err := order.ClearReceipt(); err != nil {
			return err
		}
		if err := repos.ProcurementRepo().Save(ctx, order); err != nil {
			return err
		}
		response = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// SubmitQC records a quality-control inspection and writes the per-line
// verdicts onto the order
func (s *Service) SubmitQC(ctx context.Context, tenantID, orderID, inspectorID uuid.UUID, req SubmitQCRequest) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.ProcurementRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		results := make(map[uuid.UUID]procurement.QCLineResult, len(req.Lines))
		for _, l := range req.Lines {
			results[l.ItemID] = procurement.QCLineResult{
				Accepted:         l.Accepted,
				AcceptedQuantity: l.AcceptedQuantity,
				RejectionReason:  l.RejectionReason,
			}
		}
		if err := order.ApplyQCResults(results); err != nil {
			return err
		}
		qc, err := procurement.NewQualityControl(tenantID, order.ID, inspectorID, procurement.ResultForLines(results), req.Notes)
		if err != nil {
			return err
		}
		if err := repos.QCRepo().Save(ctx, qc); err != nil {
			return err
		}
		if err := repos.ProcurementRepo().Save(ctx, order); err != nil {
			return err
		}
		response = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// AcceptOrder posts accepted quantities into inventory. Requires an approved
// QC pass. For every accepted line with a positive quantity and an inventory
// link the item row is locked, stock is received at the line price, and a
// ledger row is appended whose before/after match the locked balance.
// Quantities already posted for the order, e.g. through per-line bulk
// receiving, are netted out so acceptance never posts the same goods twice.
// The supplier performance counters update in the same transaction. Low-stock
// alerts go out after commit, best effort.
func (s *Service) AcceptOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	inspections, err := s.qcRepo.FindByProcurement(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	approved := false
	for _, qc := range inspections {
		if qc.Approved {
			approved = true
			break
		}
	}
	if !approved {
		return nil, shared.NewDomainError("QC_REQUIRED", "Acceptance requires an approved quality control pass")
	}

	var response *OrderResponse
	var lowStock []string
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.ProcurementRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}

		for _, line := range order.AcceptedLines() {
			if line.InventoryItemID == nil {
				continue
			}
			posted, err := repos.MovementRepo().NetPostedByReference(ctx, tenantID, *line.InventoryItemID, inventory.ReferenceProcurement, order.OrderNumber)
			if err != nil {
				return err
			}
			remaining := line.AcceptedQuantity.Sub(posted)
			if !remaining.IsPositive() {
				continue
			}
			item, err := repos.ItemRepo().FindByIDForUpdate(ctx, tenantID, *line.InventoryItemID)
			if err != nil {
				return err
			}
			movement, err := item.ReceiveStock(remaining, line.UnitPrice, inventory.ReferenceProcurement, order.OrderNumber)
			if err != nil {
				return err
			}
			if err := repos.ItemRepo().Save(ctx, item); err != nil {
				return err
			}
			if err := repos.MovementRepo().Append(ctx, movement); err != nil {
				return err
			}
			if item.IsBelowMinimum() {
				lowStock = append(lowStock, item.Name)
			}
		}

		if err := order.CompleteDelivery(); err != nil {
			return err
		}

		supplier, err := repos.SupplierRepo().FindByIDForUpdate(ctx, tenantID, order.SupplierID)
		if err != nil {
			return err
		}
		supplier.RecordOrderCompleted(order.DeliveredOnTime())
		if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
			return err
		}
		if err := repos.ProcurementRepo().Save(ctx, order); err != nil {
			return err
		}
		response = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(lowStock) > 0 && s.notifier != nil {
		s.notifier.Broadcast(ctx, tenantID, "Stok menipis",
			fmt.Sprintf("Stok di bawah minimum setelah penerimaan %s: %v", response.OrderNumber, lowStock))
	}
	return response, nil
}

// RejectOrder cancels the order with a reason. No inventory is touched; the
// supplier rejection counter updates and any plan allocation is released.
func (s *Service) RejectOrder(ctx context.Context, tenantID, orderID uuid.UUID, req RejectOrderRequest) (*OrderResponse, error) {
	var response *OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.ProcurementRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if err := order.Reject(req.Reason); err != nil {
			return err
		}

		if order.PlanID != nil {
			plan, err := repos.PlanRepo().FindByIDForUpdate(ctx, tenantID, *order.PlanID)
			if err != nil {
				return err
			}
			if err := plan.ReleaseBudget(order.TotalAmount); err != nil {
				return err
			}
			if err := repos.PlanRepo().Save(ctx, plan); err != nil {
				return err
			}
		}

		supplier, err := repos.SupplierRepo().FindByIDForUpdate(ctx, tenantID, order.SupplierID)
		if err != nil {
			return err
		}
		supplier.RecordOrderRejected()
		if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
			return err
		}
		if err := repos.ProcurementRepo().Save(ctx, order); err != nil {
			return err
		}
		response = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// BulkReceive applies many per-line receiving updates in one transaction.
// Any invalid line rolls back the whole batch. Accepted non-zero deltas on
// inventory-linked lines post ledger movements whose stockBefore is read
// under the row lock, not trusted from the request.
func (s *Service) BulkReceive(ctx context.Context, tenantID, orderID uuid.UUID, req BulkReceiveRequest) (*BulkReceiveResponse, error) {
	updated := 0
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.ProcurementRepo().FindByIDForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if !order.DeliveryStatus.CanRecordReceipt() {
			return shared.NewDomainError("INVALID_DELIVERY_STATUS", "Order is not in a receivable state")
		}

		for _, line := range req.Lines {
			item := order.Item(line.ItemID)
			if item == nil {
				return shared.NewDomainError("ITEM_NOT_FOUND",
					fmt.Sprintf("Order item %s not found", line.ItemID))
			}

			previous := item.ReceivedQuantity
			if err := item.RecordReceived(line.ReceivedQuantity, item.BatchNumber, item.ExpiryDate); err != nil {
				return err
			}
			acceptedQty := decimal.Zero
			if line.Accepted {
				acceptedQty = line.ReceivedQuantity
			}
			if err := item.ApplyQCResult(line.Accepted, acceptedQty, line.RejectionReason); err != nil {
				return err
			}

			delta := line.ReceivedQuantity.Sub(previous)
			if line.Accepted && !delta.IsZero() && item.InventoryItemID != nil {
				stockItem, err := repos.ItemRepo().FindByIDForUpdate(ctx, tenantID, *item.InventoryItemID)
				if err != nil {
					return err
				}
				var movement *inventory.StockMovement
				if delta.IsPositive() {
					movement, err = stockItem.ReceiveStock(delta, item.UnitPrice, inventory.ReferenceProcurement, order.OrderNumber)
				} else {
					movement, err = stockItem.ConsumeStock(delta.Neg(), inventory.ReferenceProcurement, order.OrderNumber)
				}
				if err != nil {
					return err
				}
				if err := repos.ItemRepo().Save(ctx, stockItem); err != nil {
					return err
				}
				if err := repos.MovementRepo().Append(ctx, movement); err != nil {
					return err
				}
			}
			updated++
		}

		order.RefreshDeliveryStatus()
		return repos.ProcurementRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return &BulkReceiveResponse{UpdatedCount: updated}, nil
}

// RecordPayment registers a payment against the order total
func (s *Service) RecordPayment(ctx context.Context, tenantID, orderID uuid.UUID, req RecordPaymentRequest) (*OrderResponse, error) {
	return s.mutateOrder(ctx, tenantID, orderID, func(order *procurement.Procurement) error {
		return order.RecordPayment(req.Amount)
	})
}
