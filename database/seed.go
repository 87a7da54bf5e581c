package database

import (
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/utils"
)

const sampleImageURL = "https://images.example.com/canteen/placeholder.jpg"

type seedUser struct {
	Email, First, Last, Role string
}

type seedItem struct {
	Name, Description string
	Price             string
	Vegetarian        bool
	PrepMinutes       int
}

type seedCategory struct {
	Name, Description string
	SortOrder         int
	Items             []seedItem
}

type seedCanteen struct {
	Name, Description, Location, Hours string
	AdminEmail                         string
	Categories                         []seedCategory
}

var seedUsers = []seedUser{
	{"admin@admin.com", "Super", "Admin", models.RoleSuperAdmin},
	{"student@test.com", "Test", "Student", models.RoleStudent},
	{"north-admin@admin.com", "North", "Admin", models.RoleCanteenAdmin},
	{"south-admin@admin.com", "South", "Admin", models.RoleCanteenAdmin},
	{"fastfood-admin@admin.com", "FastFood", "Admin", models.RoleCanteenAdmin},
}

var seedCanteens = []seedCanteen{
	{
		Name: "North Canteen", Description: "Delicious North Indian cuisine", Location: "Near Library Block",
		Hours: `{"monday": "09:00-20:00", "tuesday": "09:00-20:00"}`, AdminEmail: "north-admin@admin.com",
		Categories: []seedCategory{
			{"Main Course", "Full meals and curries", 1, []seedItem{
				{"Dal Rice", "Traditional dal with steamed rice", "60.00", true, 15},
				{"Chicken Curry", "Spicy chicken curry with rice", "120.00", false, 25},
			}},
			{"Snacks", "Light bites and appetizers", 2, []seedItem{
				{"Samosa", "Crispy samosa with chutney", "25.00", true, 10},
			}},
			{"Beverages", "Hot and cold drinks", 3, []seedItem{
				{"Chai", "Indian spiced tea", "15.00", true, 5},
			}},
		},
	},
	{
		Name: "South Canteen", Description: "Authentic South Indian dishes", Location: "Near Hostel Complex",
		Hours: `{"monday": "09:00-20:00", "tuesday": "09:00-20:00"}`, AdminEmail: "south-admin@admin.com",
		Categories: []seedCategory{
			{"South Indian", "Traditional South Indian dishes", 1, []seedItem{
				{"Masala Dosa", "Crispy dosa with potato filling", "80.00", true, 20},
				{"Idli Sambhar", "Steamed idli with sambhar", "50.00", true, 15},
			}},
			{"Beverages", "Filter coffee and more", 2, []seedItem{
				{"Filter Coffee", "Traditional South Indian coffee", "20.00", true, 5},
			}},
		},
	},
	{
		Name: "Fast Food Corner", Description: "Quick bites and beverages", Location: "Main Campus",
		Hours: `{"monday": "08:00-22:00", "tuesday": "08:00-22:00"}`, AdminEmail: "fastfood-admin@admin.com",
		Categories: []seedCategory{
			{"Burgers", "Various burger options", 1, []seedItem{
				{"Veg Burger", "Vegetarian burger with fries", "90.00", true, 15},
				{"Chicken Burger", "Grilled chicken burger", "130.00", false, 20},
			}},
			{"Beverages", "Soft drinks and shakes", 2, []seedItem{
				{"Chocolate Shake", "Rich chocolate milkshake", "60.00", true, 5},
			}},
		},
	},
}

// Seed inserts the sample users, canteens and menus. Rows that already
// exist (matched by their unique keys) are left as they are.
func Seed(db *gorm.DB, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admins := map[string]uint{}
		for _, su := range seedUsers {
			user := models.User{
				Email:     su.Email,
				Password:  string(hashed),
				FirstName: su.First,
				LastName:  su.Last,
				Role:      su.Role,
			}
			if err := tx.Where(models.User{Email: su.Email}).FirstOrCreate(&user).Error; err != nil {
				return err
			}
			admins[su.Email] = user.ID
		}

		for _, sc := range seedCanteens {
			adminID := admins[sc.AdminEmail]
			canteen := models.Canteen{
				Name:         sc.Name,
				Description:  sc.Description,
				Location:     sc.Location,
				OpeningHours: sc.Hours,
				IsActive:     true,
				AdminID:      &adminID,
			}
			if err := tx.Omit(clause.Associations).Where(models.Canteen{Name: sc.Name}).FirstOrCreate(&canteen).Error; err != nil {
				return err
			}

			for _, cat := range sc.Categories {
				category := models.MenuCategory{
					CanteenID:   canteen.ID,
					Name:        cat.Name,
					Description: cat.Description,
					SortOrder:   cat.SortOrder,
					IsActive:    true,
				}
				if err := tx.Omit(clause.Associations).
					Where(models.MenuCategory{CanteenID: canteen.ID, Name: cat.Name}).
					FirstOrCreate(&category).Error; err != nil {
					return err
				}

				for _, si := range cat.Items {
					item := models.MenuItem{
						CanteenID:       canteen.ID,
						CategoryID:      category.ID,
						Name:            si.Name,
						Description:     si.Description,
						ImageURL:        sampleImageURL,
						Price:           decimal.RequireFromString(si.Price),
						IsAvailable:     true,
						IsVegetarian:    si.Vegetarian,
						PreparationTime: si.PrepMinutes,
					}
					if err := tx.Omit(clause.Associations).
						Where(models.MenuItem{CategoryID: category.ID, Name: si.Name}).
						FirstOrCreate(&item).Error; err != nil {
						return err
					}
				}
			}
		}

		utils.InfoLogger.Printf("Seeded %d users and %d canteens", len(seedUsers), len(seedCanteens))
		return nil
	})
}
