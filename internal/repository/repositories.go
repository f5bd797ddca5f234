// Package repository holds one thin repository per entity. Each method
// is a single row-store call.
package repository

import "gorm.io/gorm"

// Repositories bundles every entity repository over one connection.
type Repositories struct {
	Sites          *SiteRepository
	Vendors        *VendorRepository
	Workers        *WorkerRepository
	Expenses       *ExpenseRepository
	WorkerPayments *WorkerPaymentRepository
	SiteIncome     *SiteIncomeRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Sites:          NewSiteRepository(db),
		Vendors:        NewVendorRepository(db),
		Workers:        NewWorkerRepository(db),
		Expenses:       NewExpenseRepository(db),
		WorkerPayments: NewWorkerPaymentRepository(db),
		SiteIncome:     NewSiteIncomeRepository(db),
	}
}
