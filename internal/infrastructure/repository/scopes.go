package repository

import (
	domainRepo "github.com/sangkips/sales-api/internal/domain/repository"
	"gorm.io/gorm"
)

// dateWindow returns a GORM scope that keeps sales dated within the window.
// Open bounds leave the query unfiltered on that side.
func dateWindow(w domainRepo.DateWindow) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if w.From != nil {
			db = db.Where("date >= ?", w.From.UTC())
		}
		if w.To != nil {
			db = db.Where("date < ?", w.To.UTC())
		}
		return db
	}
}
