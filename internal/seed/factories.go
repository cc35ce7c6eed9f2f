// Package seed provides helpers to create demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"foodbridge/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password every seeded donor logs in with.
const DemoPassword = "DEMO1234"

var foodNames = []string{
	"Day-old Bread", "Croissants", "Vegetable Soup", "Fruit Salad",
	"Sandwiches", "Bagels", "Muffins", "Pasta Salad", "Rice Bowls",
	"Yogurt Cups", "Cheese Platter", "Roast Vegetables", "Quiche",
	"Pizza Slices", "Donuts", "Wraps", "Granola Bars", "Smoothies",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateDonor constructs and persists a donor account. All seeded
// donors share DemoPassword so demos can log in. Optional override
// functions may modify the generated donor before saving.
func (f *Factory) CreateDonor(overrides ...func(*models.Donor)) (*models.Donor, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	donor := &models.Donor{
		Username:     fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		PasswordHash: string(hash),
	}

	for _, override := range overrides {
		override(donor)
	}

	if err := f.db.Create(donor).Error; err != nil {
		return nil, err
	}
	return donor, nil
}

// CreateStore constructs and persists the donor's store.
func (f *Factory) CreateStore(donor *models.Donor, overrides ...func(*models.Store)) (*models.Store, error) {
	store := &models.Store{
		Name:      fmt.Sprintf("%s %s", gofakeit.Company(), pick(f.r, []string{"Bakery", "Deli", "Market", "Grocer", "Kitchen"})),
		Latitude:  gofakeit.Latitude(),
		Longitude: gofakeit.Longitude(),
		DonorID:   donor.ID,
	}

	for _, override := range overrides {
		override(store)
	}

	if err := f.db.Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// CreateFoodItem constructs and persists a food listing under the given
// store, expiring between 6 hours and 5 days from now.
func (f *Factory) CreateFoodItem(store *models.Store, overrides ...func(*models.FoodItem)) (*models.FoodItem, error) {
	item := &models.FoodItem{
		Name:           pick(f.r, foodNames),
		Description:    gofakeit.Sentence(8),
		ExpirationDate: time.Now().Add(6*time.Hour + time.Duration(f.r.Intn(5*24))*time.Hour),
		StoreID:        store.ID,
	}

	for _, override := range overrides {
		override(item)
	}

	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// WithClaim marks a generated item as already claimed.
func WithClaim(claimerName, claimCode string) func(*models.FoodItem) {
	return func(item *models.FoodItem) {
		now := time.Now().Add(-time.Hour)
		item.ClaimCode = &claimCode
		item.ClaimedByName = &claimerName
		item.ClaimedAt = &now
	}
}

// WithPickup marks a generated item as claimed and picked up.
func WithPickup(claimerName, claimCode string) func(*models.FoodItem) {
	return func(item *models.FoodItem) {
		WithClaim(claimerName, claimCode)(item)
		pickedUp := time.Now().Add(-30 * time.Minute)
		item.IsPickedUp = true
		item.PickedUpAt = &pickedUp
	}
}

func pick(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}
