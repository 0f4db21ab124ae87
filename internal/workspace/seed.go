package workspace

// Seed datasets written for every user on first login. The dataset names are
// the storage contract with the dashboard screens; renaming one orphans the
// data users already have.

// Room describes one hotel room in the renovation plan.
type Room struct {
	Number string `json:"number"`
	Floor  int    `json:"floor"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// HotelData is the static property description seeded into a new workspace.
type HotelData struct {
	Name  string `json:"name"`
	Rooms []Room `json:"rooms"`
}

// Task is a maintenance or renovation to-do item.
type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Assignee string `json:"assignee"`
	Priority string `json:"priority"`
	Done     bool   `json:"done"`
}

// InventoryItem tracks supplies kept on site.
type InventoryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// Expense is a renovation budget line item.
type Expense struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// SeedDataset pairs a dataset name with its default value.
type SeedDataset struct {
	Name  string
	Value interface{}
}

// DefaultSeed returns the datasets written on first login, in a stable
// order. Values marshal to the JSON shapes the dashboard screens read.
func DefaultSeed() []SeedDataset {
	return []SeedDataset{
		{Name: "hotelBrendleData", Value: HotelData{
			Name: "Hotel Brendle",
			Rooms: []Room{
				{Number: "101", Floor: 1, Type: "Queen", Status: "renovation"},
				{Number: "102", Floor: 1, Type: "Double", Status: "renovation"},
				{Number: "103", Floor: 1, Type: "Queen", Status: "closed"},
				{Number: "201", Floor: 2, Type: "King", Status: "ready"},
				{Number: "202", Floor: 2, Type: "Suite", Status: "ready"},
				{Number: "203", Floor: 2, Type: "Double", Status: "renovation"},
			},
		}},
		{Name: "hotelBrendleTasks", Value: []Task{
			{ID: "task-1", Title: "Patch drywall in room 101", Assignee: "Roy", Priority: "high"},
			{ID: "task-2", Title: "Replace lobby light fixtures", Assignee: "Dana", Priority: "medium"},
			{ID: "task-3", Title: "Deep clean second floor hallway", Assignee: "Miguel", Priority: "low"},
		}},
		{Name: "hotelBrendleDirective", Value: "Focus on preparing guest-facing areas and completing all pending low-cost maintenance tasks."},
		{Name: "hotelBrendleInventory", Value: []InventoryItem{
			{ID: "inv-1", Name: "Interior paint (eggshell)", Quantity: 14, Unit: "gal"},
			{ID: "inv-2", Name: "Drywall sheets", Quantity: 22, Unit: "pcs"},
			{ID: "inv-3", Name: "Cleaning supplies kit", Quantity: 8, Unit: "kits"},
		}},
		{Name: "renovationTotalBudget", Value: 250000},
		{Name: "renovationExpenses", Value: []Expense{
			{ID: "exp-1", Title: "Initial site survey and planning", Date: "2024-05-01", Amount: 2500, Category: "Other"},
			{ID: "exp-2", Title: "Lobby demolition labor", Date: "2024-05-10", Amount: 7500, Category: "Labor"},
			{ID: "exp-3", Title: "Structural steel beams", Date: "2024-05-15", Amount: 12500, Category: "Materials"},
		}},
		{Name: "hotelBrendleOrderRequests", Value: []interface{}{}},
		{Name: "timeClockStatus", Value: "out"},
		{Name: "timeClockTime", Value: nil},
	}
}
