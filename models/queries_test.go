package models

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupQueryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&User{}, &FurnitureType{}, &Workshop{}, &Worker{}, &Order{}, &OrderWorkJournal{}, &OrderPhoto{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestActiveOrders(t *testing.T) {
	db := setupQueryTestDB(t)

	furnitureType := FurnitureType{Title: "Шкаф", Category: CategoryCase}
	if err := db.Create(&furnitureType).Error; err != nil {
		t.Fatalf("Failed to create furniture type: %v", err)
	}

	deadline := time.Now().AddDate(0, 0, 14)
	statuses := []string{StatusNew, StatusInProgress, StatusInProgress, StatusCompleted, StatusCancelled}
	for i, status := range statuses {
		order := Order{
			Title:           "Заказ",
			CustomerName:    "Клиент",
			CustomerPhone:   "+7-900-000-00-00",
			FurnitureTypeID: furnitureType.ID,
			Status:          status,
			Priority:        PriorityMedium,
			Deadline:        deadline,
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("Failed to create order %d: %v", i, err)
		}
	}

	var orders []Order
	if err := ActiveOrders(db).Find(&orders).Error; err != nil {
		t.Fatalf("ActiveOrders failed: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("Expected 2 active orders, got %d", len(orders))
	}
	for _, order := range orders {
		if order.Status != StatusInProgress {
			t.Errorf("Expected only in_progress orders, got %s", order.Status)
		}
	}
	// Newest first
	if orders[0].ID < orders[1].ID {
		t.Errorf("Expected descending id order, got %d before %d", orders[0].ID, orders[1].ID)
	}
}

func TestSummarizeWorkshop(t *testing.T) {
	db := setupQueryTestDB(t)

	workshop := Workshop{WorkshopNumber: 1, Title: "Сборочный цех"}
	if err := db.Create(&workshop).Error; err != nil {
		t.Fatalf("Failed to create workshop: %v", err)
	}

	for i := 0; i < 3; i++ {
		worker := Worker{FirstName: "Иван", LastName: "Петров", WorkshopID: workshop.ID, HireDate: time.Now()}
		if err := db.Create(&worker).Error; err != nil {
			t.Fatalf("Failed to create worker: %v", err)
		}
	}

	furnitureType := FurnitureType{Title: "Стол", Category: CategoryOffice}
	if err := db.Create(&furnitureType).Error; err != nil {
		t.Fatalf("Failed to create furniture type: %v", err)
	}

	for _, status := range []string{StatusInProgress, StatusInProgress, StatusCompleted} {
		order := Order{
			Title:           "Заказ",
			CustomerName:    "Клиент",
			CustomerPhone:   "+7-900-000-00-00",
			FurnitureTypeID: furnitureType.ID,
			Status:          status,
			Priority:        PriorityMedium,
			Deadline:        time.Now().AddDate(0, 0, 7),
			Workshops:       []Workshop{workshop},
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("Failed to create order: %v", err)
		}
	}

	summary, err := SummarizeWorkshop(db, workshop.ID)
	if err != nil {
		t.Fatalf("SummarizeWorkshop failed: %v", err)
	}

	if summary.WorkerCount != 3 {
		t.Errorf("Expected 3 workers, got %d", summary.WorkerCount)
	}
	if summary.ActiveOrderCount != 2 {
		t.Errorf("Expected 2 active orders, got %d", summary.ActiveOrderCount)
	}
}

func TestPageDescByID(t *testing.T) {
	db := setupQueryTestDB(t)

	furnitureType := FurnitureType{Title: "Кровать", Category: CategoryCase}
	if err := db.Create(&furnitureType).Error; err != nil {
		t.Fatalf("Failed to create furniture type: %v", err)
	}

	for i := 0; i < 15; i++ {
		order := Order{
			Title:           "Заказ",
			CustomerName:    "Клиент",
			CustomerPhone:   "+7-900-000-00-00",
			FurnitureTypeID: furnitureType.ID,
			Status:          StatusInProgress,
			Priority:        PriorityMedium,
			Deadline:        time.Now().AddDate(0, 0, 7),
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("Failed to create order: %v", err)
		}
	}

	var pageOne []Order
	if err := PageDescByID(ActiveOrders(db), 0).Find(&pageOne).Error; err != nil {
		t.Fatalf("First page query failed: %v", err)
	}
	if len(pageOne) != PageSize {
		t.Fatalf("Expected %d orders on page one, got %d", PageSize, len(pageOne))
	}

	cursor := pageOne[len(pageOne)-1].ID
	var pageTwo []Order
	if err := PageDescByID(ActiveOrders(db), cursor).Find(&pageTwo).Error; err != nil {
		t.Fatalf("Second page query failed: %v", err)
	}
	if len(pageTwo) != 5 {
		t.Fatalf("Expected 5 orders on page two, got %d", len(pageTwo))
	}

	// No record appears on both pages
	seen := make(map[uint]bool)
	for _, order := range pageOne {
		seen[order.ID] = true
	}
	for _, order := range pageTwo {
		if seen[order.ID] {
			t.Errorf("Order %d appears on both pages", order.ID)
		}
	}
}
