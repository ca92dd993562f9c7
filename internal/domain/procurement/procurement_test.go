package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcurement(t *testing.T) *Procurement {
	t.Helper()
	p, err := NewProcurement(uuid.New(), "PO-2025-001", uuid.New(), "CV Sumber Pangan")
	require.NoError(t, err)
	return p
}

func newOrderedProcurement(t *testing.T) *Procurement {
	t.Helper()
	p := newTestProcurement(t)
	_, err := p.AddItem(nil, "RICE-01", "Beras Premium", "kg", decimal.NewFromInt(100), decimal.NewFromInt(12))
	require.NoError(t, err)
	require.NoError(t, p.Submit())
	require.NoError(t, p.Approve(uuid.New()))
	require.NoError(t, p.MarkOrdered())
	return p
}

func TestProcurement_Totals(t *testing.T) {
	t.Run("total follows subtotal minus discount plus tax and shipping", func(t *testing.T) {
		p := newTestProcurement(t)
		_, err := p.AddItem(nil, "RICE-01", "Beras", "kg", decimal.NewFromInt(100), decimal.NewFromInt(12))
		require.NoError(t, err)
		_, err = p.AddItem(nil, "OIL-01", "Minyak Goreng", "liter", decimal.NewFromInt(20), decimal.NewFromInt(18))
		require.NoError(t, err)

		require.NoError(t, p.SetCharges(decimal.NewFromInt(60), decimal.NewFromInt(150), decimal.NewFromInt(50)))

		assert.True(t, p.SubtotalAmount.Equal(decimal.NewFromInt(1560)))
		assert.True(t, p.TotalAmount.Equal(decimal.NewFromInt(1700)))
	})

	t.Run("removing an item recomputes totals", func(t *testing.T) {
		p := newTestProcurement(t)
		item, err := p.AddItem(nil, "RICE-01", "Beras", "kg", decimal.NewFromInt(100), decimal.NewFromInt(12))
		require.NoError(t, err)
		_, err = p.AddItem(nil, "OIL-01", "Minyak", "liter", decimal.NewFromInt(20), decimal.NewFromInt(18))
		require.NoError(t, err)

		require.NoError(t, p.RemoveItem(item.ID))
		assert.True(t, p.SubtotalAmount.Equal(decimal.NewFromInt(360)))
	})

	t.Run("discount cannot exceed subtotal", func(t *testing.T) {
		p := newTestProcurement(t)
		_, err := p.AddItem(nil, "RICE-01", "Beras", "kg", decimal.NewFromInt(10), decimal.NewFromInt(10))
		require.NoError(t, err)

		err = p.SetCharges(decimal.NewFromInt(200), decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})
}

func TestProcurement_StatusTransitions(t *testing.T) {
	t.Run("happy path draft to completed", func(t *testing.T) {
		p := newOrderedProcurement(t)
		assert.Equal(t, StatusOrdered, p.Status)

		receivedAt := time.Now()
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(100)}}
		require.NoError(t, p.RecordReceipt("GR-001", "", decimal.NewFromInt(25), receivedAt, lines))
		assert.Equal(t, DeliveryDelivered, p.DeliveryStatus)

		require.NoError(t, p.CompleteDelivery())
		assert.Equal(t, StatusCompleted, p.Status)
		assert.Equal(t, DeliveryCompleted, p.DeliveryStatus)
	})

	t.Run("cannot submit without items", func(t *testing.T) {
		p := newTestProcurement(t)
		require.Error(t, p.Submit())
	})

	t.Run("cannot approve a draft", func(t *testing.T) {
		p := newTestProcurement(t)
		require.Error(t, p.Approve(uuid.New()))
	})

	t.Run("items locked after submit", func(t *testing.T) {
		p := newTestProcurement(t)
		_, err := p.AddItem(nil, "RICE-01", "Beras", "kg", decimal.NewFromInt(10), decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, p.Submit())

		_, err = p.AddItem(nil, "OIL-01", "Minyak", "liter", decimal.NewFromInt(5), decimal.NewFromInt(18))
		require.Error(t, err)
	})
}

func TestProcurement_Receipt(t *testing.T) {
	t.Run("partial receipt marks delivery partial", func(t *testing.T) {
		p := newOrderedProcurement(t)
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(60)}}
		require.NoError(t, p.RecordReceipt("GR-001", "", decimal.Zero, time.Now(), lines))
		assert.Equal(t, DeliveryPartial, p.DeliveryStatus)
	})

	t.Run("received quantity cannot exceed ordered", func(t *testing.T) {
		p := newOrderedProcurement(t)
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(150)}}
		err := p.RecordReceipt("GR-001", "", decimal.Zero, time.Now(), lines)
		require.Error(t, err)
	})

	t.Run("receipt requires a receipt number", func(t *testing.T) {
		p := newOrderedProcurement(t)
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(10)}}
		err := p.RecordReceipt("  ", "", decimal.Zero, time.Now(), lines)
		require.Error(t, err)
	})

	t.Run("clear receipt resets delivery state", func(t *testing.T) {
		p := newOrderedProcurement(t)
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(100)}}
		require.NoError(t, p.RecordReceipt("GR-001", "photo.jpg", decimal.NewFromInt(25), time.Now(), lines))

		require.NoError(t, p.ClearReceipt())
		assert.Equal(t, DeliveryPending, p.DeliveryStatus)
		assert.Empty(t, p.ReceiptNumber)
		assert.Nil(t, p.ReceivedAt)
		assert.True(t, p.Items[0].ReceivedQuantity.IsZero())
	})
}

func TestProcurement_QualityControl(t *testing.T) {
	t.Run("accepted lines carry accepted quantity", func(t *testing.T) {
		p := newOrderedProcurement(t)
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(100)}}
		require.NoError(t, p.RecordReceipt("GR-001", "", decimal.Zero, time.Now(), lines))

		results := map[uuid.UUID]QCLineResult{
			p.Items[0].ID: {Accepted: true, AcceptedQuantity: decimal.NewFromInt(95)},
		}
		require.NoError(t, p.ApplyQCResults(results))

		accepted := p.AcceptedLines()
		require.Len(t, accepted, 1)
		assert.True(t, accepted[0].AcceptedQuantity.Equal(decimal.NewFromInt(95)))
	})

	t.Run("rejected line requires a reason", func(t *testing.T) {
		p := newOrderedProcurement(t)
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(100)}}
		require.NoError(t, p.RecordReceipt("GR-001", "", decimal.Zero, time.Now(), lines))

		results := map[uuid.UUID]QCLineResult{
			p.Items[0].ID: {Accepted: false},
		}
		require.Error(t, p.ApplyQCResults(results))
	})

	t.Run("accepted quantity cannot exceed received", func(t *testing.T) {
		p := newOrderedProcurement(t)
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(50)}}
		require.NoError(t, p.RecordReceipt("GR-001", "", decimal.Zero, time.Now(), lines))

		results := map[uuid.UUID]QCLineResult{
			p.Items[0].ID: {Accepted: true, AcceptedQuantity: decimal.NewFromInt(60)},
		}
		require.Error(t, p.ApplyQCResults(results))
	})
}

func TestProcurement_Reject(t *testing.T) {
	t.Run("requires a reason of at least ten characters", func(t *testing.T) {
		p := newOrderedProcurement(t)
		require.Error(t, p.Reject("too short"))
		require.NoError(t, p.Reject("supplier failed delivery twice"))
		assert.Equal(t, StatusCancelled, p.Status)
		assert.Equal(t, DeliveryCancelled, p.DeliveryStatus)
	})

	t.Run("cannot reject a completed order", func(t *testing.T) {
		p := newOrderedProcurement(t)
		lines := []ReceiptLine{{ItemID: p.Items[0].ID, ReceivedQuantity: decimal.NewFromInt(100)}}
		require.NoError(t, p.RecordReceipt("GR-001", "", decimal.Zero, time.Now(), lines))
		require.NoError(t, p.CompleteDelivery())

		require.Error(t, p.Reject("goods were spoiled on arrival"))
	})
}

func TestProcurement_Payments(t *testing.T) {
	t.Run("payments accumulate and cap at total", func(t *testing.T) {
		p := newOrderedProcurement(t)
		// 100 * 12 = 1200
		require.NoError(t, p.RecordPayment(decimal.NewFromInt(700)))
		assert.Equal(t, PaymentPartiallyPaid, p.PaymentStatus())

		require.Error(t, p.RecordPayment(decimal.NewFromInt(600)))

		require.NoError(t, p.RecordPayment(decimal.NewFromInt(500)))
		assert.Equal(t, PaymentPaid, p.PaymentStatus())
		assert.True(t, p.OutstandingAmount().IsZero())
	})

	t.Run("paid order is always current regardless of due date", func(t *testing.T) {
		p := newOrderedProcurement(t)
		due := time.Now().AddDate(0, 0, -95)
		p.SetPaymentDue(&due)
		require.NoError(t, p.RecordPayment(decimal.NewFromInt(1200)))

		assert.Equal(t, AgingCurrent, p.AgingCategory())
	})
}
