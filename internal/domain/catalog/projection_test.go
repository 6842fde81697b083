package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	categories []Category
	plans      []Plan
}

func (f *catalogFixture) category(name string, order int, active bool) *Category {
	c := Category{Name: name, Label: name + " label", Icon: "Icon", SortOrder: order, IsActive: active}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	f.categories = append(f.categories, c)
	return &f.categories[len(f.categories)-1]
}

func (f *catalogFixture) plan(categoryID uuid.UUID, data string, order int, active bool) {
	p := Plan{CategoryID: categoryID, Data: data, Price: 100, Features: "f", Duration: "30 días", SortOrder: order, IsActive: active, HasCalls: true, IsFeatured: true}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	f.plans = append(f.plans, p)
}

func TestProjectPublicCatalog(t *testing.T) {
	t.Run("keeps only active categories and active plans", func(t *testing.T) {
		f := &catalogFixture{}
		a := f.category("monthly", 1, true)
		aID := a.ID
		b := f.category("annual", 0, false)
		f.plan(aID, "P1", 0, true)
		f.plan(aID, "P2", 1, false)
		f.plan(b.ID, "P3", 0, true)

		projected := ProjectPublicCatalog(f.categories, f.plans)

		require.Len(t, projected, 1)
		assert.Equal(t, "monthly", projected[0].ID)
		require.Len(t, projected[0].Plans, 1)
		assert.Equal(t, "P1", projected[0].Plans[0].Data)
	})

	t.Run("keeps active category without active plans", func(t *testing.T) {
		f := &catalogFixture{}
		a := f.category("mifi", 5, true)
		f.plan(a.ID, "P1", 0, false)

		projected := ProjectPublicCatalog(f.categories, f.plans)

		require.Len(t, projected, 1)
		assert.NotNil(t, projected[0].Plans)
		assert.Empty(t, projected[0].Plans)
	})

	t.Run("orders categories and plans", func(t *testing.T) {
		f := &catalogFixture{}
		second := f.category("quarterly", 2, true)
		secondID := second.ID
		first := f.category("monthly", 1, true)
		f.plan(first.ID, "late", 5, true)
		f.plan(first.ID, "early", 1, true)
		f.plan(secondID, "only", 0, true)

		projected := ProjectPublicCatalog(f.categories, f.plans)

		require.Len(t, projected, 2)
		assert.Equal(t, "monthly", projected[0].ID)
		assert.Equal(t, "quarterly", projected[1].ID)
		assert.Equal(t, "early", projected[0].Plans[0].Data)
		assert.Equal(t, "late", projected[0].Plans[1].Data)
	})

	t.Run("renames plan fields", func(t *testing.T) {
		f := &catalogFixture{}
		a := f.category("monthly", 1, true)
		f.plan(a.ID, "6GB", 0, true)

		pp := ProjectPublicCatalog(f.categories, f.plans)[0].Plans[0]
		assert.True(t, pp.Calls)
		assert.True(t, pp.Featured)
		assert.Equal(t, f.plans[0].ID, pp.ID)
	})

	t.Run("is idempotent and does not modify inputs", func(t *testing.T) {
		f := &catalogFixture{}
		a := f.category("monthly", 1, true)
		aID := a.ID
		f.category("annual", 0, true)
		f.plan(aID, "B", 2, true)
		f.plan(aID, "A", 1, true)

		categoriesBefore := append([]Category(nil), f.categories...)
		plansBefore := append([]Plan(nil), f.plans...)

		first := ProjectPublicCatalog(f.categories, f.plans)
		second := ProjectPublicCatalog(f.categories, f.plans)

		assert.Equal(t, first, second)
		assert.Equal(t, categoriesBefore, f.categories)
		assert.Equal(t, plansBefore, f.plans)
	})
}

func TestSummarizePublicCategories(t *testing.T) {
	f := &catalogFixture{}
	a := f.category("monthly", 1, true)
	aID := a.ID
	f.category("annual", 2, false)
	empty := f.category("mifi", 3, true)
	emptyID := empty.ID
	f.plan(aID, "P1", 0, true)
	f.plan(aID, "P2", 1, true)
	f.plan(aID, "P3", 2, false)
	f.plan(emptyID, "P4", 0, false)

	summaries := SummarizePublicCategories(f.categories, f.plans)

	require.Len(t, summaries, 2)
	assert.Equal(t, "monthly", summaries[0].Name)
	assert.Equal(t, 2, summaries[0].PlanCount)
	assert.Equal(t, "mifi", summaries[1].Name)
	assert.Equal(t, 0, summaries[1].PlanCount)
}
