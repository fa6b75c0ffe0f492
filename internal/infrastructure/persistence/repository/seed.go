package repository

import "github.com/garyjia/vip-ledger/internal/domain/entity"

// Demo data served until a collection is first saved. Every call returns fresh slices.

const (
	demoVipPhone   = "966558828009"
	demoHotelPhone = "966501234567"
)

// SeedClients returns the demo VIP directory
func SeedClients() []entity.VipClient {
	return []entity.VipClient{
		{
			ID:              demoHotelPhone,
			Phone:           demoHotelPhone,
			CompanyName:     "مطعم النخبة",
			ContactPerson:   "خالد العتيبي",
			ShippingAddress: "Riyadh, Olaya St. 12, Building 4",
		},
		{
			ID:              demoVipPhone,
			Phone:           demoVipPhone,
			CompanyName:     "فندق دلتا التجريبي",
			ContactPerson:   "أحمد المالكي",
			ShippingAddress: "Jeddah, Tahlia St. 45, Gate 2",
		},
	}
}

// SeedVipAccounts returns the demo VIP login
func SeedVipAccounts() []entity.VipAccount {
	return []entity.VipAccount{
		{Phone: demoVipPhone, Password: "vip", Name: "فندق دلتا التجريبي"},
	}
}

// SeedInvoices returns the demo invoices
func SeedInvoices() []entity.Invoice {
	return []entity.Invoice{
		entity.Invoice{
			ID:           "INV-1001",
			OrderID:      "ORD-5001",
			ClientID:     demoVipPhone,
			CustomerName: "فندق دلتا التجريبي",
			Date:         "2024-05-01",
			DueDate:      "2024-05-31",
			Items: []entity.InvoiceItem{
				{ProductID: "P-10", Name: "Fresh Tomatoes", Quantity: 10, Price: 45},
			},
			Subtotal: 450,
			Shipping: 50,
			Tax:      75,
			Total:    575,
		}.WithStatus(entity.InvoiceStatusPaid),
		entity.Invoice{
			ID:           "INV-1002",
			OrderID:      "ORD-5002",
			ClientID:     demoVipPhone,
			CustomerName: "فندق دلتا التجريبي",
			Date:         "2024-06-03",
			DueDate:      "2024-07-03",
			Items: []entity.InvoiceItem{
				{ProductID: "P-22", Name: "Medjool Dates", Quantity: 20, Price: 30},
			},
			Subtotal: 600,
			Shipping: 0,
			Tax:      90,
			Total:    690,
		}.WithStatus(entity.InvoiceStatusPendingPayment),
		entity.Invoice{
			ID:           "INV-1003",
			OrderID:      "ORD-5003",
			ClientID:     demoHotelPhone,
			CustomerName: "مطعم النخبة",
			Date:         "2024-06-10",
			DueDate:      "2024-06-20",
			Items: []entity.InvoiceItem{
				{ProductID: "P-31", Name: "Cucumbers", Quantity: 40, Price: 5},
				{ProductID: "P-32", Name: "Lettuce", Quantity: 30, Price: 4},
			},
			Subtotal: 320,
			Shipping: 30,
			Tax:      52.5,
			Total:    402.5,
		}.WithStatus(entity.InvoiceStatusPendingConfirmation),
	}
}

// SeedPayments returns the demo payment log
func SeedPayments() []entity.Payment {
	return []entity.Payment{
		{
			ID:        "PAY-2001",
			InvoiceID: "INV-1001",
			ClientID:  demoVipPhone,
			Date:      "2024-05-20",
			Amount:    575,
			Method:    entity.PaymentMethodBankTransfer,
			MethodAr:  entity.PaymentMethodBankTransfer.Arabic(),
			Status:    entity.PaymentStatusConfirmed,
		},
	}
}

// SeedTransactions returns the demo ledger, balances consistent with the rows
func SeedTransactions() []entity.VipTransaction {
	return []entity.VipTransaction{
		{
			ID:            "TRX-3001",
			ClientID:      demoVipPhone,
			Date:          "2024-05-01",
			Description:   "Invoice INV-1001",
			DescriptionAr: "فاتورة INV-1001",
			DescriptionEn: "Invoice INV-1001",
			Debit:         575,
			Balance:       -575,
		},
		{
			ID:            "TRX-3002",
			ClientID:      demoVipPhone,
			Date:          "2024-05-20",
			Description:   "Payment PAY-2001",
			DescriptionAr: "دفعة PAY-2001",
			DescriptionEn: "Payment PAY-2001",
			Credit:        575,
			Balance:       0,
		},
		{
			ID:            "TRX-3003",
			ClientID:      demoVipPhone,
			Date:          "2024-06-03",
			Description:   "Invoice INV-1002",
			DescriptionAr: "فاتورة INV-1002",
			DescriptionEn: "Invoice INV-1002",
			Debit:         690,
			Balance:       -690,
		},
		{
			ID:            "TRX-3004",
			ClientID:      demoHotelPhone,
			Date:          "2024-06-10",
			Description:   "Invoice INV-1003",
			DescriptionAr: "فاتورة INV-1003",
			DescriptionEn: "Invoice INV-1003",
			Debit:         402.5,
			Balance:       -402.5,
		},
	}
}
