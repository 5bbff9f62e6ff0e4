package controllers

import (
	"gorm.io/gorm"
)

func byOrderIndex(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC").Order("id ASC")
}

// nextOrderIndex returns the index one past the highest order_index among the
// children of parentID, so appended records always sort last.
func nextOrderIndex(db *gorm.DB, model interface{}, parentColumn string, parentID uint) (int, error) {
	var next int
	err := db.Model(model).
		Where(parentColumn+" = ?", parentID).
		Select("COALESCE(MAX(order_index), -1) + 1").
		Scan(&next).Error
	return next, err
}
