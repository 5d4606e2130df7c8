package horses

import (
	"math"
	"strings"

	"gfg-stable-backend/internal/domain"

	"gorm.io/datatypes"
)

// CreateHorseRequest is the POST /api/horses body.
type CreateHorseRequest struct {
	Name            string       `json:"name" validate:"required,notblank,max=255"`
	Sire            string       `json:"sire" validate:"required,notblank,max=255"`
	Dam             string       `json:"dam" validate:"required,notblank,max=255"`
	Sex             string       `json:"sex" validate:"required,oneof=colt filly gelding mare stallion"`
	Age             int          `json:"age" validate:"required,gte=1,lte=30"`
	AgeCategory     string       `json:"ageCategory" validate:"required,oneof=1YO 2YO 3YO 4YO 5YO 6YO 7YO 8YO+"`
	Gait            string       `json:"gait" validate:"required,oneof=trotter pacer"`
	Status          string       `json:"status" validate:"required,oneof=new old"`
	HorseType       string       `json:"horseType" validate:"required,oneof=standardbred thoroughbred quarter_horse arabian other"`
	Jurisdiction    []string     `json:"jurisdiction" validate:"required,min=1,dive,notblank,max=10"`
	Trainer         *string      `json:"trainer" validate:"omitempty,max=255"`
	StableLocation  *string      `json:"stableLocation" validate:"omitempty,max=255"`
	PurchaseDate    *domain.Date `json:"purchaseDate" validate:"required"`
	PurchasePrice   *float64     `json:"purchasePrice" validate:"required,gte=0"`
	CurrentValue    *float64     `json:"currentValue" validate:"omitempty,gte=0"`
	PricePerPercent *float64     `json:"pricePerPercent" validate:"required,gte=0"`
	InitialShares   *int         `json:"initialShares" validate:"omitempty,gte=1,lte=100"`
	CurrentShares   *int         `json:"currentShares" validate:"omitempty,gte=0,lte=100"`
	Wins            *int         `json:"wins" validate:"omitempty,gte=0"`
	Places          *int         `json:"places" validate:"omitempty,gte=0"`
	Shows           *int         `json:"shows" validate:"omitempty,gte=0"`
	Races           *int         `json:"races" validate:"omitempty,gte=0"`
	Earnings        *float64     `json:"earnings" validate:"omitempty,gte=0"`
	ImageURL        *string      `json:"imageUrl" validate:"omitempty,url"`
	Description     *string      `json:"description" validate:"omitempty,max=1000"`
}

// UpdateHorseRequest carries only the fields a PUT may change. Nil means unchanged.
type UpdateHorseRequest struct {
	Name            *string      `json:"name" validate:"omitempty,max=255"`
	Sire            *string      `json:"sire" validate:"omitempty,max=255"`
	Dam             *string      `json:"dam" validate:"omitempty,max=255"`
	Sex             *string      `json:"sex" validate:"omitempty,oneof=colt filly gelding mare stallion"`
	Age             *int         `json:"age" validate:"omitempty,gte=1,lte=30"`
	AgeCategory     *string      `json:"ageCategory" validate:"omitempty,oneof=1YO 2YO 3YO 4YO 5YO 6YO 7YO 8YO+"`
	Gait            *string      `json:"gait" validate:"omitempty,oneof=trotter pacer"`
	Status          *string      `json:"status" validate:"omitempty,oneof=new old"`
	HorseType       *string      `json:"horseType" validate:"omitempty,oneof=standardbred thoroughbred quarter_horse arabian other"`
	Jurisdiction    []string     `json:"jurisdiction" validate:"omitempty,min=1,dive,notblank,max=10"`
	Trainer         *string      `json:"trainer" validate:"omitempty,max=255"`
	StableLocation  *string      `json:"stableLocation" validate:"omitempty,max=255"`
	PurchaseDate    *domain.Date `json:"purchaseDate"`
	PurchasePrice   *float64     `json:"purchasePrice" validate:"omitempty,gte=0"`
	CurrentValue    *float64     `json:"currentValue" validate:"omitempty,gte=0"`
	PricePerPercent *float64     `json:"pricePerPercent" validate:"omitempty,gte=0"`
	InitialShares   *int         `json:"initialShares" validate:"omitempty,gte=1,lte=100"`
	CurrentShares   *int         `json:"currentShares" validate:"omitempty,gte=0,lte=100"`
	Wins            *int         `json:"wins" validate:"omitempty,gte=0"`
	Places          *int         `json:"places" validate:"omitempty,gte=0"`
	Shows           *int         `json:"shows" validate:"omitempty,gte=0"`
	Races           *int         `json:"races" validate:"omitempty,gte=0"`
	Earnings        *float64     `json:"earnings" validate:"omitempty,gte=0"`
	ImageURL        *string      `json:"imageUrl" validate:"omitempty,url"`
	Description     *string      `json:"description" validate:"omitempty,max=1000"`
}

// UpdatePerformanceRequest holds deltas added to the horse's running totals.
type UpdatePerformanceRequest struct {
	Wins       *int         `json:"wins" validate:"omitempty,gte=0"`
	Places     *int         `json:"places" validate:"omitempty,gte=0"`
	Shows      *int         `json:"shows" validate:"omitempty,gte=0"`
	Races      *int         `json:"races" validate:"omitempty,gte=0"`
	Earnings   *float64     `json:"earnings" validate:"omitempty,gte=0"`
	UpdateDate *domain.Date `json:"updateDate"`
	Notes      *string      `json:"notes" validate:"omitempty,max=500"`
}

// UpdateFinancialsRequest overwrites whichever fields are set.
type UpdateFinancialsRequest struct {
	CurrentValue    *float64     `json:"currentValue" validate:"omitempty,gte=0"`
	PricePerPercent *float64     `json:"pricePerPercent" validate:"omitempty,gte=0"`
	SharesRemaining *float64     `json:"sharesRemaining" validate:"omitempty,gte=0,lte=100"`
	UpdateDate      *domain.Date `json:"updateDate"`
	Notes           *string      `json:"notes" validate:"omitempty,max=500"`
}

// PurchaseRequest is the POST /api/horses/:id/purchase body.
type PurchaseRequest struct {
	MemberID   uint    `json:"memberId" validate:"required,gte=1"`
	Percentage float64 `json:"percentage" validate:"required,gte=0.01,lte=100"`
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func valueOr[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// toHorse builds the row for CreateHorse; share counts default to 100/100.
func (r CreateHorseRequest) toHorse() domain.Horse {
	initial := valueOr(r.InitialShares, 100)
	current := valueOr(r.CurrentShares, 100)
	return domain.Horse{
		Name:            strings.TrimSpace(r.Name),
		Sire:            strings.TrimSpace(r.Sire),
		Dam:             strings.TrimSpace(r.Dam),
		Sex:             r.Sex,
		Age:             r.Age,
		AgeCategory:     r.AgeCategory,
		Gait:            r.Gait,
		Status:          r.Status,
		HorseType:       r.HorseType,
		Jurisdiction:    datatypes.JSONSlice[string](trimAll(r.Jurisdiction)),
		Trainer:         trimmed(r.Trainer),
		StableLocation:  trimmed(r.StableLocation),
		PurchaseDate:    *r.PurchaseDate,
		PurchasePrice:   *r.PurchasePrice,
		CurrentValue:    r.CurrentValue,
		PricePerPercent: *r.PricePerPercent,
		InitialShares:   initial,
		CurrentShares:   current,
		SharesRemaining: float64(initial - current),
		Wins:            valueOr(r.Wins, 0),
		Places:          valueOr(r.Places, 0),
		Shows:           valueOr(r.Shows, 0),
		Races:           valueOr(r.Races, 0),
		Earnings:        valueOr(r.Earnings, 0),
		ImageURL:        r.ImageURL,
		Description:     trimmed(r.Description),
	}
}

// columns maps the set fields onto horses columns.
func (r UpdateHorseRequest) columns() (map[string]interface{}, error) {
	cols := map[string]interface{}{}
	for col, p := range map[string]*string{"name": r.Name, "sire": r.Sire, "dam": r.Dam} {
		if p == nil {
			continue
		}
		v := strings.TrimSpace(*p)
		if v == "" {
			return nil, ErrBlankField.WithDetails(map[string]string{"field": col})
		}
		cols[col] = v
	}
	setString := func(col string, p *string) {
		if p != nil {
			cols[col] = *p
		}
	}
	setString("sex", r.Sex)
	setString("age_category", r.AgeCategory)
	setString("gait", r.Gait)
	setString("status", r.Status)
	setString("horse_type", r.HorseType)
	setString("trainer", trimmed(r.Trainer))
	setString("stable_location", trimmed(r.StableLocation))
	setString("image_url", r.ImageURL)
	setString("description", trimmed(r.Description))

	setInt := func(col string, p *int) {
		if p != nil {
			cols[col] = *p
		}
	}
	setInt("age", r.Age)
	setInt("initial_shares", r.InitialShares)
	setInt("current_shares", r.CurrentShares)
	setInt("wins", r.Wins)
	setInt("places", r.Places)
	setInt("shows", r.Shows)
	setInt("races", r.Races)

	setFloat := func(col string, p *float64) {
		if p != nil {
			cols[col] = *p
		}
	}
	setFloat("purchase_price", r.PurchasePrice)
	setFloat("current_value", r.CurrentValue)
	setFloat("price_per_percent", r.PricePerPercent)
	setFloat("earnings", r.Earnings)

	if r.Jurisdiction != nil {
		cols["jurisdiction"] = datatypes.JSONSlice[string](trimAll(r.Jurisdiction))
	}
	if r.PurchaseDate != nil {
		cols["purchase_date"] = *r.PurchaseDate
	}
	return cols, nil
}

func (r UpdateFinancialsRequest) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if r.CurrentValue != nil {
		cols["current_value"] = *r.CurrentValue
	}
	if r.PricePerPercent != nil {
		cols["price_per_percent"] = *r.PricePerPercent
	}
	if r.SharesRemaining != nil {
		cols["shares_remaining"] = *r.SharesRemaining
	}
	return cols
}
