package horses

import (
	"math"
	"strconv"
	"strings"

	"gfg-stable-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 100
)

// HorseFilters is bound from the query string of GET /api/horses.
type HorseFilters struct {
	Search       string `query:"search" validate:"omitempty,max=255"`
	Status       string `query:"status" validate:"omitempty,oneof=new old available sold_out"`
	Age          string `query:"age" validate:"omitempty,ageband"`
	Gait         string `query:"gait" validate:"omitempty,oneof=trotter pacer"`
	Jurisdiction string `query:"jurisdiction" validate:"omitempty,max=10"`
	Sex          string `query:"sex" validate:"omitempty,oneof=colt filly gelding mare stallion"`
	Sire         string `query:"sire" validate:"omitempty,max=255"`
	Trainer      string `query:"trainer" validate:"omitempty,max=255"`
	HorseType    string `query:"horseType" validate:"omitempty,oneof=standardbred thoroughbred quarter_horse arabian other"`
	PriceRange   string `query:"priceRange" validate:"omitempty,oneof=0-50 51-100 101-200 200+"`
	SortBy       string `query:"sortBy" validate:"omitempty,oneof=name age price_per_percent shares_remaining earnings wins purchase_date"`
	SortOrder    string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page         int    `query:"page" validate:"omitempty,gte=1"`
	Limit        int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
}

// sortColumns is the allow-list for ORDER BY.
var sortColumns = map[string]bool{
	"name":              true,
	"age":               true,
	"price_per_percent": true,
	"shares_remaining":  true,
	"earnings":          true,
	"wins":              true,
	"purchase_date":     true,
}

// HorsePage is one page of a filtered listing.
type HorsePage struct {
	Horses     []domain.Horse
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

func (f HorseFilters) pageAndLimit() (int, int) {
	page, limit := f.Page, f.Limit
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// where ANDs one predicate per supplied filter onto db.
func (f HorseFilters) where(db *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("(LOWER(name) LIKE ? OR LOWER(sire) LIKE ? OR LOWER(dam) LIKE ? OR LOWER(trainer) LIKE ?)",
			like, like, like, like)
	}

	switch f.Status {
	case "":
	case "available":
		db = db.Where("shares_remaining > 0")
	case "sold_out":
		db = db.Where("shares_remaining = 0")
	default:
		db = db.Where("status = ?", f.Status)
	}

	switch f.Age {
	case "":
	case "2-4":
		db = db.Where("age BETWEEN 2 AND 4")
	case "5-7":
		db = db.Where("age BETWEEN 5 AND 7")
	case "8+":
		db = db.Where("age >= 8")
	default:
		if n, err := strconv.Atoi(f.Age); err == nil {
			db = db.Where("age = ?", n)
		}
	}

	if f.Gait != "" {
		db = db.Where("gait = ?", f.Gait)
	}
	if f.Jurisdiction != "" {
		db = db.Where(datatypes.JSONArrayQuery("jurisdiction").Contains(f.Jurisdiction))
	}
	if f.Sex != "" {
		db = db.Where("sex = ?", f.Sex)
	}
	if s := strings.TrimSpace(f.Sire); s != "" {
		db = db.Where("sire = ?", s)
	}
	if s := strings.TrimSpace(f.Trainer); s != "" {
		db = db.Where("trainer = ?", s)
	}
	if f.HorseType != "" {
		db = db.Where("horse_type = ?", f.HorseType)
	}

	switch f.PriceRange {
	case "0-50":
		db = db.Where("price_per_percent <= 50")
	case "51-100":
		db = db.Where("price_per_percent > 50 AND price_per_percent <= 100")
	case "101-200":
		db = db.Where("price_per_percent > 100 AND price_per_percent <= 200")
	case "200+":
		db = db.Where("price_per_percent > 200")
	}
	return db
}

// orderBy falls back to name ascending for anything outside the allow-list.
// id breaks ties so pages never overlap.
func (f HorseFilters) orderBy() string {
	col := "name"
	if sortColumns[f.SortBy] {
		col = f.SortBy
	}
	dir := "ASC"
	if strings.EqualFold(f.SortOrder, "desc") {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC"
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
