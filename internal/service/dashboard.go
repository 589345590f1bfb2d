package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intel/internal/domain"
)

// CategoryView is the joined insight bundle for one category scope.
type CategoryView struct {
	Category      domain.Category
	Insight       *domain.CategoryInsight
	SubCategories []domain.SubCategoryInsight
}

// GlobalView is the corpus-wide dashboard bundle.
type GlobalView struct {
	PredictiveInsights []domain.PredictiveInsight
	Alerts             []domain.Alert
	RefreshedAt        time.Time
}

// Dashboard owns the current insight scope. Every fetch is tagged with a
// generation counter taken when it starts; results whose generation no
// longer matches by the time they arrive are discarded, so rapid scope
// changes can never apply stale data.
type Dashboard struct {
	insights *Insights
	logger   *zap.Logger

	mu          sync.Mutex
	categoryGen uint64
	catView     *CategoryView
	globalGen   uint64
	globalView  GlobalView
}

// NewDashboard constructs the scope manager.
func NewDashboard(insights *Insights, logger *zap.Logger) *Dashboard {
	return &Dashboard{insights: insights, logger: logger}
}

// SelectCategory switches the active category scope and fetches its
// insight and sub-topic breakdown concurrently. The returned bool reports
// whether the result was applied; false means a newer selection superseded
// this one while its fetches were in flight.
func (d *Dashboard) SelectCategory(ctx context.Context, category domain.Category) (*CategoryView, bool) {
	d.mu.Lock()
	d.categoryGen++
	gen := d.categoryGen
	d.mu.Unlock()

	view := &CategoryView{Category: category}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		insight, err := d.insights.CategoryInsights(ctx, category)
		if err != nil {
			d.logger.Warn("category insight fetch failed", zap.Error(err))
			return
		}
		view.Insight = insight
	}()
	go func() {
		defer wg.Done()
		subs, err := d.insights.SubCategoryInsights(ctx, category)
		if err != nil {
			d.logger.Warn("sub-topic fetch failed", zap.Error(err))
			return
		}
		view.SubCategories = subs
	}()
	wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.categoryGen {
		d.logger.Debug("discarding stale category view",
			zap.String("category", string(category)),
			zap.Uint64("generation", gen))
		return view, false
	}
	d.catView = view
	return view, true
}

// CurrentCategoryView returns the last applied category view, if any.
func (d *Dashboard) CurrentCategoryView() (*CategoryView, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.catView == nil {
		return nil, false
	}
	view := *d.catView
	return &view, true
}

// RefreshGlobal recomputes the corpus-wide view: predictive insights and
// proactive alerts, fetched concurrently. Staleness is handled the same
// way as for category scopes.
func (d *Dashboard) RefreshGlobal(ctx context.Context) (GlobalView, bool) {
	d.mu.Lock()
	d.globalGen++
	gen := d.globalGen
	d.mu.Unlock()

	view := GlobalView{
		PredictiveInsights: []domain.PredictiveInsight{},
		Alerts:             []domain.Alert{},
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		preds, err := d.insights.PredictiveInsights(ctx)
		if err != nil {
			d.logger.Warn("predictive insight fetch failed", zap.Error(err))
			return
		}
		view.PredictiveInsights = preds
	}()
	go func() {
		defer wg.Done()
		alerts, err := d.insights.Alerts(ctx)
		if err != nil {
			d.logger.Warn("alert fetch failed", zap.Error(err))
			return
		}
		view.Alerts = alerts
	}()
	wg.Wait()
	view.RefreshedAt = time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.globalGen {
		return view, false
	}
	d.globalView = view
	return view, true
}

// GlobalSnapshot returns the last applied global view.
func (d *Dashboard) GlobalSnapshot() GlobalView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.globalView
}
