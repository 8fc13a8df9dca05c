package sample

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/expense"
	log "github.com/sirupsen/logrus"
)

// keepExistingThreshold: a store that already holds more than this many
// expenses is considered in use and is not re-seeded.
const keepExistingThreshold = 5

type item struct {
	description string
	amount      float64
	tags        []string
}

var monthlyItems = []struct {
	item
	category expense.Category
}{
	{item{"Hostel Rent", 8000, []string{"hostel", "rent"}}, expense.CategoryHousing},
	{item{"College Fees", 5000, []string{"college", "fees"}}, expense.CategoryEducation},
	{item{"Internet Bill", 700, []string{"wifi", "internet"}}, expense.CategoryUtilities},
	{item{"Mobile Recharge", 299, []string{"mobile", "recharge"}}, expense.CategoryUtilities},
}

var foodItems = []item{
	{"Mess Lunch", 80, []string{"mess", "lunch"}},
	{"Mess Dinner", 80, []string{"mess", "dinner"}},
	{"Breakfast", 50, []string{"breakfast", "canteen"}},
	{"Tea/Snacks", 30, []string{"tea", "snacks"}},
	{"Restaurant", 300, []string{"restaurant", "treat"}},
}

var transportItems = []item{
	{"Bus Pass", 500, []string{"bus", "monthly"}},
	{"Auto", 100, []string{"auto", "local"}},
	{"Metro", 60, []string{"metro"}},
}

var entertainmentItems = []item{
	{"Movie Ticket", 200, []string{"movie", "entertainment"}},
	{"Coffee Shop", 150, []string{"coffee", "friends"}},
	{"Shopping", 500, []string{"clothes", "shopping"}},
}

var educationItems = []item{
	{"Books", 800, []string{"books", "study"}},
	{"Online Course", 1200, []string{"course", "online"}},
	{"Stationery", 200, []string{"stationery", "college"}},
}

// Generator seeds three months of plausible demo expenses for an empty store.
type Generator struct {
	expenses expense.Repository
	clock    utils.Clock
	rng      *rand.Rand
}

func NewGenerator(expenses expense.Repository, clock utils.Clock) *Generator {
	return &Generator{
		expenses: expenses,
		clock:    clock,
		rng:      rand.New(rand.NewSource(clock.Now().UnixNano())),
	}
}

// Initialize seeds demo data unless the store already contains real expenses.
// It reports how many expenses were inserted.
func (g *Generator) Initialize(ctx context.Context) (int, error) {
	count, err := g.expenses.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > keepExistingThreshold {
		log.Infof("store already holds %d expenses, skipping sample data", count)
		return 0, nil
	}

	now := g.clock.Now()
	inserted := 0
	for day := now.AddDate(0, 0, -90); !day.After(now); day = day.AddDate(0, 0, 1) {
		for _, exp := range g.expensesForDay(day) {
			if err := g.expenses.Store(ctx, exp); err != nil {
				return inserted, err
			}
			inserted++
		}
	}

	log.Infof("seeded %d sample expenses", inserted)
	return inserted, nil
}

func (g *Generator) expensesForDay(day time.Time) []expense.Expense {
	var generated []expense.Expense

	if day.Day() == 1 {
		for _, monthly := range monthlyItems {
			generated = append(generated, g.newExpense(monthly.item, monthly.category, day, expense.PriorityHigh, "Monthly expense"))
		}
	}

	// food on roughly 9 days out of 10, a few entries each
	if g.rng.Float64() > 0.1 {
		for i := 0; i < 2+g.rng.Intn(3); i++ {
			food := foodItems[g.rng.Intn(len(foodItems))]
			generated = append(generated, g.newExpense(food, expense.CategoryFood, day, expense.PriorityMedium, "Daily food expense"))
		}
	}

	if g.rng.Float64() > 0.4 {
		transport := transportItems[g.rng.Intn(len(transportItems))]
		generated = append(generated, g.newExpense(transport, expense.CategoryTransport, day, expense.PriorityMedium, "Transportation expense"))
	}

	if day.Weekday() == time.Sunday && g.rng.Float64() > 0.3 {
		entertainment := entertainmentItems[g.rng.Intn(len(entertainmentItems))]
		generated = append(generated, g.newExpense(entertainment, expense.CategoryEntertainment, day, expense.PriorityLow, "Weekend entertainment"))
	}

	if g.rng.Float64() > 0.8 {
		education := educationItems[g.rng.Intn(len(educationItems))]
		generated = append(generated, g.newExpense(education, expense.CategoryEducation, day, expense.PriorityHigh, "Educational expense"))
	}

	return generated
}

func (g *Generator) newExpense(it item, category expense.Category, day time.Time, priority expense.Priority, notes string) expense.Expense {
	now := g.clock.Now()
	return expense.Expense{
		ID:          uuid.NewString(),
		Description: it.description,
		Amount:      it.amount,
		Category:    category,
		Date:        day,
		Priority:    priority,
		Tags:        it.tags,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
