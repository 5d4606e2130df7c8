package horses

import (
	"context"
	"testing"
	"time"

	"gfg-stable-backend/internal/domain"
	"gfg-stable-backend/internal/infrastructure/database"
	"gfg-stable-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHorsesTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	require.NoError(t, database.Configure(db, database.Options{MaxOpenConns: 1}))
	require.NoError(t, database.AutoMigrate(db))
	return &Service{DB: db}, db
}

func seedMember(t *testing.T, db *gorm.DB, email string) domain.User {
	t.Helper()
	u := domain.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Ann",
		LastName:     "Lee",
		RoleID:       constants.MemberRoleID,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func ptr[T any](v T) *T { return &v }

func horseRequest(name string) CreateHorseRequest {
	date := domain.NewDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	return CreateHorseRequest{
		Name:            name,
		Sire:            "Somebeachsomewhere",
		Dam:             "Lady Luck",
		Sex:             "colt",
		Age:             3,
		AgeCategory:     "3YO",
		Gait:            "pacer",
		Status:          "new",
		HorseType:       "standardbred",
		Jurisdiction:    []string{"NY", "ON"},
		Trainer:         ptr("Ron Burke"),
		PurchaseDate:    &date,
		PurchasePrice:   ptr(50000.0),
		CurrentValue:    ptr(60000.0),
		PricePerPercent: ptr(50.0),
		InitialShares:   ptr(100),
		CurrentShares:   ptr(0),
	}
}

func createHorse(t *testing.T, svc *Service, req CreateHorseRequest) *domain.Horse {
	t.Helper()
	h, err := svc.CreateHorse(context.Background(), req, 1)
	require.NoError(t, err)
	return h
}

func TestCreateHorse_RoundTrip(t *testing.T) {
	svc, _ := setupHorsesTest(t)
	ctx := context.Background()

	req := horseRequest("Go For Glory")
	req.Description = ptr("  Fast on the front end  ")
	created := createHorse(t, svc, req)

	got, err := svc.GetHorseByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go For Glory", got.Name)
	assert.Equal(t, "Somebeachsomewhere", got.Sire)
	assert.Equal(t, "Lady Luck", got.Dam)
	assert.Equal(t, "colt", got.Sex)
	assert.Equal(t, 3, got.Age)
	assert.Equal(t, "3YO", got.AgeCategory)
	assert.Equal(t, "pacer", got.Gait)
	assert.Equal(t, "new", got.Status)
	assert.Equal(t, "standardbred", got.HorseType)
	assert.Equal(t, []string{"NY", "ON"}, []string(got.Jurisdiction))
	require.NotNil(t, got.Trainer)
	assert.Equal(t, "Ron Burke", *got.Trainer)
	assert.Equal(t, "2024-03-15", got.PurchaseDate.String())
	assert.InDelta(t, 50000.0, got.PurchasePrice, 0.001)
	require.NotNil(t, got.CurrentValue)
	assert.InDelta(t, 60000.0, *got.CurrentValue, 0.001)
	assert.InDelta(t, 50.0, got.PricePerPercent, 0.001)
	assert.Equal(t, 100, got.InitialShares)
	assert.Equal(t, 0, got.CurrentShares)
	assert.InDelta(t, 100.0, got.SharesRemaining, 0.001)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Fast on the front end", *got.Description)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, uint(1), *got.CreatedBy)
}

func TestCreateHorse_DefaultSharesAreSoldOut(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	member := seedMember(t, db, "m@example.com")

	req := horseRequest("Full House")
	req.InitialShares = nil
	req.CurrentShares = nil
	h := createHorse(t, svc, req)
	assert.Equal(t, 100, h.InitialShares)
	assert.Equal(t, 100, h.CurrentShares)
	assert.Zero(t, h.SharesRemaining)

	_, err := svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: member.ID, Percentage: 10}, 1)
	assert.ErrorIs(t, err, ErrNotEnoughShares)

	var owners, txs int64
	db.Model(&domain.HorseOwnership{}).Count(&owners)
	db.Model(&domain.HorseTransaction{}).Count(&txs)
	assert.Zero(t, owners)
	assert.Zero(t, txs)
}

func TestCreateHorse_RejectsCurrentAboveInitial(t *testing.T) {
	svc, _ := setupHorsesTest(t)
	req := horseRequest("Backwards")
	req.InitialShares = ptr(40)
	req.CurrentShares = ptr(60)
	_, err := svc.CreateHorse(context.Background(), req, 1)
	assert.ErrorIs(t, err, ErrInvalidShares)
}

func TestPurchaseShares_Success(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	member := seedMember(t, db, "m@example.com")

	req := horseRequest("Shareable")
	req.CurrentShares = ptr(50)
	h := createHorse(t, svc, req)
	require.InDelta(t, 50.0, h.SharesRemaining, 0.001)

	own, err := svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: member.ID, Percentage: 10}, 7)
	require.NoError(t, err)
	assert.Equal(t, member.ID, own.MemberID)
	assert.InDelta(t, 10.0, own.Percentage, 0.001)
	assert.InDelta(t, 500.0, own.PurchasePrice, 0.001)
	assert.True(t, own.IsActive)

	after, err := svc.GetHorseByID(ctx, h.ID)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, after.SharesRemaining, 0.001)

	var tx domain.HorseTransaction
	require.NoError(t, db.Where("horse_id = ?", h.ID).First(&tx).Error)
	assert.Equal(t, domain.TransactionPurchase, tx.TransactionType)
	assert.InDelta(t, 500.0, tx.TotalAmount, 0.001)
	assert.InDelta(t, 50.0, tx.PricePerPercent, 0.001)
	assert.Equal(t, uint(7), tx.CreatedBy)
}

func TestPurchaseShares_RoundsToStoredPrecision(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	member := seedMember(t, db, "m@example.com")

	req := horseRequest("Precise")
	req.CurrentShares = ptr(50)
	req.PricePerPercent = ptr(40.0)
	h := createHorse(t, svc, req)

	own, err := svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: member.ID, Percentage: 33.333}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 33.33, own.Percentage, 1e-9)
	assert.InDelta(t, 1333.2, own.PurchasePrice, 1e-9)

	var tx domain.HorseTransaction
	require.NoError(t, db.Where("horse_id = ?", h.ID).First(&tx).Error)
	assert.InDelta(t, 33.33, tx.Percentage, 1e-9)
	assert.InDelta(t, 1333.2, tx.TotalAmount, 1e-9)

	after, err := svc.GetHorseByID(ctx, h.ID)
	require.NoError(t, err)
	assert.InDelta(t, 16.67, after.SharesRemaining, 0.001)

	_, err = svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: member.ID, Percentage: 0.004}, 1)
	assert.ErrorIs(t, err, ErrInvalidPercentage)
}

func TestPurchaseShares_ExhaustsInventory(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	member := seedMember(t, db, "m@example.com")

	req := horseRequest("Limited")
	req.CurrentShares = ptr(80)
	h := createHorse(t, svc, req)

	_, err := svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: member.ID, Percentage: 15}, 1)
	require.NoError(t, err)
	_, err = svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: member.ID, Percentage: 10}, 1)
	assert.ErrorIs(t, err, ErrNotEnoughShares)
	_, err = svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: member.ID, Percentage: 5}, 1)
	require.NoError(t, err)

	after, err := svc.GetHorseByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Zero(t, after.SharesRemaining)

	var owners int64
	db.Model(&domain.HorseOwnership{}).Where("horse_id = ?", h.ID).Count(&owners)
	assert.Equal(t, int64(2), owners)
}

func TestPurchaseShares_NotFound(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	member := seedMember(t, db, "m@example.com")

	_, err := svc.PurchaseShares(ctx, 999, PurchaseRequest{MemberID: member.ID, Percentage: 1}, 1)
	assert.ErrorIs(t, err, ErrHorseNotFound)

	h := createHorse(t, svc, horseRequest("Orphan"))
	_, err = svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: 999, Percentage: 1}, 1)
	assert.ErrorIs(t, err, ErrMemberNotFound)

	after, err := svc.GetHorseByID(ctx, h.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, after.SharesRemaining, 0.001)
}

func TestGetHorses_Filters(t *testing.T) {
	svc, _ := setupHorsesTest(t)
	ctx := context.Background()

	a := horseRequest("Alpha")
	a.Age, a.PricePerPercent = 3, ptr(40.0)
	createHorse(t, svc, a)

	b := horseRequest("Bravo")
	b.Age, b.Gait, b.Sex, b.Jurisdiction = 6, "trotter", "mare", []string{"PA"}
	b.PricePerPercent = ptr(150.0)
	b.CurrentShares = ptr(100)
	b.Trainer = ptr("Tony Alagna")
	createHorse(t, svc, b)

	c := horseRequest("Charlie")
	c.Age, c.Status, c.HorseType = 9, "old", "thoroughbred"
	c.Sire = "Artsplace"
	c.PricePerPercent = ptr(250.0)
	createHorse(t, svc, c)

	names := func(f HorseFilters) []string {
		t.Helper()
		page, err := svc.GetHorses(ctx, f)
		require.NoError(t, err)
		out := make([]string, 0, len(page.Horses))
		for _, h := range page.Horses {
			out = append(out, h.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, names(HorseFilters{}))
	assert.Equal(t, []string{"Alpha", "Charlie"}, names(HorseFilters{Status: "available"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{Status: "sold_out"}))
	assert.Equal(t, []string{"Charlie"}, names(HorseFilters{Status: "old"}))
	assert.Equal(t, []string{"Alpha"}, names(HorseFilters{Age: "2-4"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{Age: "5-7"}))
	assert.Equal(t, []string{"Charlie"}, names(HorseFilters{Age: "8+"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{Age: "6"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{Gait: "trotter"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{Jurisdiction: "PA"}))
	assert.Equal(t, []string{"Alpha", "Charlie"}, names(HorseFilters{Jurisdiction: "NY"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{Sex: "mare"}))
	assert.Equal(t, []string{"Charlie"}, names(HorseFilters{Sire: "Artsplace"}))
	assert.Equal(t, []string{"Charlie"}, names(HorseFilters{HorseType: "thoroughbred"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{Trainer: "Tony Alagna"}))
	assert.Equal(t, []string{"Alpha", "Charlie"}, names(HorseFilters{Trainer: "Ron Burke"}))
	assert.Empty(t, names(HorseFilters{Trainer: "Nobody"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{Search: "alagna"}))
	assert.Equal(t, []string{"Charlie"}, names(HorseFilters{Trainer: "Ron Burke", Search: "char"}))
	assert.Empty(t, names(HorseFilters{Trainer: "Tony Alagna", Search: "alpha"}))
	assert.Equal(t, []string{"Alpha"}, names(HorseFilters{PriceRange: "0-50"}))
	assert.Equal(t, []string{"Bravo"}, names(HorseFilters{PriceRange: "101-200"}))
	assert.Equal(t, []string{"Charlie"}, names(HorseFilters{PriceRange: "200+"}))
	assert.Empty(t, names(HorseFilters{PriceRange: "51-100"}))
	assert.Equal(t, []string{"Charlie"}, names(HorseFilters{Search: "ARTS"}))
	assert.Equal(t, []string{"Alpha"}, names(HorseFilters{Search: "alp", Gait: "pacer"}))
	assert.Empty(t, names(HorseFilters{Search: "alp", Gait: "trotter"}))

	assert.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, names(HorseFilters{SortBy: "age", SortOrder: "desc"}))
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, names(HorseFilters{SortBy: "id; DROP TABLE horses"}))
}

func TestGetHorses_Pagination(t *testing.T) {
	svc, _ := setupHorsesTest(t)
	ctx := context.Background()
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		req := horseRequest(n)
		req.Age = 4
		createHorse(t, svc, req)
	}

	page, err := svc.GetHorses(ctx, HorseFilters{SortBy: "age", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Horses, 2)
	assert.Equal(t, "C", page.Horses[0].Name)
	assert.Equal(t, "D", page.Horses[1].Name)

	page, err = svc.GetHorses(ctx, HorseFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
}

func TestUpdateHorse(t *testing.T) {
	svc, _ := setupHorsesTest(t)
	ctx := context.Background()
	h := createHorse(t, svc, horseRequest("Before"))

	updated, err := svc.UpdateHorse(ctx, h.ID, UpdateHorseRequest{
		Name:         ptr(" After "),
		Jurisdiction: []string{"OH"},
		Wins:         ptr(4),
	}, 9)
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, []string{"OH"}, []string(updated.Jurisdiction))
	assert.Equal(t, 4, updated.Wins)
	assert.Equal(t, "Somebeachsomewhere", updated.Sire)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, uint(9), *updated.UpdatedBy)

	_, err = svc.UpdateHorse(ctx, h.ID, UpdateHorseRequest{}, 9)
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	_, err = svc.UpdateHorse(ctx, h.ID, UpdateHorseRequest{Name: ptr("   ")}, 9)
	assert.ErrorIs(t, err, ErrBlankField)

	_, err = svc.UpdateHorse(ctx, 999, UpdateHorseRequest{Name: ptr("X")}, 9)
	assert.ErrorIs(t, err, ErrHorseNotFound)
}

func TestDeleteHorse(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	member := seedMember(t, db, "m@example.com")
	h := createHorse(t, svc, horseRequest("Gone"))
	_, err := svc.PurchaseShares(ctx, h.ID, PurchaseRequest{MemberID: member.ID, Percentage: 5}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHorse(ctx, h.ID))
	_, err = svc.GetHorseByID(ctx, h.ID)
	assert.ErrorIs(t, err, ErrHorseNotFound)

	var owners int64
	db.Model(&domain.HorseOwnership{}).Count(&owners)
	assert.Zero(t, owners)

	assert.ErrorIs(t, svc.DeleteHorse(ctx, h.ID), ErrHorseNotFound)
}

func TestGetHorsesByMember(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	m1 := seedMember(t, db, "one@example.com")
	m2 := seedMember(t, db, "two@example.com")

	zulu := createHorse(t, svc, horseRequest("Zulu"))
	alpha := createHorse(t, svc, horseRequest("Alpha"))
	createHorse(t, svc, horseRequest("Unowned"))

	for _, id := range []uint{zulu.ID, zulu.ID, alpha.ID} {
		_, err := svc.PurchaseShares(ctx, id, PurchaseRequest{MemberID: m1.ID, Percentage: 5}, 1)
		require.NoError(t, err)
	}

	horses, err := svc.GetHorsesByMember(ctx, m1.ID)
	require.NoError(t, err)
	require.Len(t, horses, 2)
	assert.Equal(t, "Alpha", horses[0].Name)
	assert.Equal(t, "Zulu", horses[1].Name)

	horses, err = svc.GetHorsesByMember(ctx, m2.ID)
	require.NoError(t, err)
	assert.Empty(t, horses)
}

func TestGetStatistics(t *testing.T) {
	svc, _ := setupHorsesTest(t)
	ctx := context.Background()

	stats, err := svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalHorses)
	assert.Zero(t, stats.AverageValue)

	a := horseRequest("A")
	a.Earnings = ptr(1000.0)
	createHorse(t, svc, a)

	b := horseRequest("B")
	b.Status = "old"
	b.CurrentShares = ptr(100)
	b.CurrentValue = ptr(20000.0)
	b.Earnings = ptr(3000.0)
	createHorse(t, svc, b)

	stats, err = svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalHorses)
	assert.Equal(t, int64(1), stats.ActiveHorses)
	assert.Equal(t, int64(1), stats.RetiredHorses)
	assert.Equal(t, int64(1), stats.SoldHorses)
	assert.InDelta(t, 80000.0, stats.TotalValue, 0.01)
	assert.InDelta(t, 40000.0, stats.AverageValue, 0.01)
	assert.InDelta(t, 4000.0, stats.TotalEarnings, 0.01)
	assert.InDelta(t, 2000.0, stats.AverageEarnings, 0.01)
}

func TestUpdatePerformance_IsAdditive(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	req := horseRequest("Runner")
	req.Wins = ptr(2)
	req.Earnings = ptr(100.0)
	h := createHorse(t, svc, req)

	entry, err := svc.UpdatePerformance(ctx, h.ID, UpdatePerformanceRequest{
		Wins: ptr(1), Races: ptr(3), Earnings: ptr(250.5), Notes: ptr("Won at Yonkers"),
	}, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Wins)
	assert.Equal(t, domain.Today().String(), entry.UpdateDate.String())

	after, err := svc.GetHorseByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Wins)
	assert.Equal(t, 3, after.Races)
	assert.Equal(t, 0, after.Places)
	assert.InDelta(t, 350.5, after.Earnings, 0.001)

	var logs int64
	db.Model(&domain.HorsePerformanceUpdate{}).Where("horse_id = ?", h.ID).Count(&logs)
	assert.Equal(t, int64(1), logs)

	_, err = svc.UpdatePerformance(ctx, 999, UpdatePerformanceRequest{Wins: ptr(1)}, 4)
	assert.ErrorIs(t, err, ErrHorseNotFound)
	db.Model(&domain.HorsePerformanceUpdate{}).Count(&logs)
	assert.Equal(t, int64(1), logs)
}

func TestUpdateFinancials_OverwritesSuppliedFields(t *testing.T) {
	svc, db := setupHorsesTest(t)
	ctx := context.Background()
	h := createHorse(t, svc, horseRequest("Asset"))

	entry, err := svc.UpdateFinancials(ctx, h.ID, UpdateFinancialsRequest{
		PricePerPercent: ptr(75.0),
		SharesRemaining: ptr(20.0),
	}, 3)
	require.NoError(t, err)
	assert.Nil(t, entry.CurrentValue)

	after, err := svc.GetHorseByID(ctx, h.ID)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, after.PricePerPercent, 0.001)
	assert.InDelta(t, 20.0, after.SharesRemaining, 0.001)
	require.NotNil(t, after.CurrentValue)
	assert.InDelta(t, 60000.0, *after.CurrentValue, 0.001)
	require.NotNil(t, after.UpdatedBy)
	assert.Equal(t, uint(3), *after.UpdatedBy)

	var logs int64
	db.Model(&domain.HorseFinancialUpdate{}).Count(&logs)
	assert.Equal(t, int64(1), logs)

	_, err = svc.UpdateFinancials(ctx, 999, UpdateFinancialsRequest{}, 3)
	assert.ErrorIs(t, err, ErrHorseNotFound)
}
