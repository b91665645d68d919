package database

import "gorm.io/gorm"

func Preload(db *gorm.DB, preloads []string) *gorm.DB {
	for _, item := range preloads {
		db = db.Preload(item)
	}
	return db
}

type PreloadEntity struct {
	Entity     string
	Conditions []any
}

func PreloadWithConditions(db *gorm.DB, preloads []PreloadEntity) *gorm.DB {
	for _, item := range preloads {
		db = db.Preload(item.Entity, item.Conditions...)
	}
	return db
}
