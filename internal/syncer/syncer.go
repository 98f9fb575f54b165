package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"GoldSync/internal/calculator"
	"GoldSync/internal/catalog"
	"GoldSync/internal/collector"
	"GoldSync/internal/model"
	"GoldSync/internal/pricing"
	"GoldSync/internal/recorder"
	"GoldSync/internal/state"
)

// Catalog is the part of the catalog service a cycle reads and writes.
type Catalog interface {
	ListProducts(ctx context.Context) ([]model.CatalogItem, error)
	ListPrices(ctx context.Context, productID string) ([]model.PriceRecord, error)
	UpdatePrice(ctx context.Context, productID, priceID string, upd catalog.PriceUpdate) error
}

// Options tune how a cycle walks the catalog.
type Options struct {
	// ResolvePrices fetches each product's price records; otherwise the
	// product's own identifier and current price id are used.
	ResolvePrices bool
	// Workers bounds concurrent per-product work. Values below 1 mean 1.
	Workers int
}

// Syncer runs synchronization cycles: quote -> catalog -> per-record pricing -> push.
type Syncer struct {
	Quotes    collector.QuoteFetcher
	Catalog   Catalog
	Evaluator *pricing.Evaluator
	State     *state.Tracker
	Recorder  recorder.Recorder
	Logger    logrus.FieldLogger
	Options   Options

	now func() time.Time
}

// New creates a Syncer.
func New(quotes collector.QuoteFetcher, cat Catalog, eval *pricing.Evaluator, tracker *state.Tracker,
	rec recorder.Recorder, logger logrus.FieldLogger, opts Options) *Syncer {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Syncer{
		Quotes:    quotes,
		Catalog:   cat,
		Evaluator: eval,
		State:     tracker,
		Recorder:  rec,
		Logger:    logger,
		Options:   opts,
		now:       time.Now,
	}
}

// RunCycle executes one full cycle. An error is returned only when the cycle
// was aborted before per-item work (quote or catalog fetch failed); per-record
// failures are reported in the result.
func (s *Syncer) RunCycle(ctx context.Context) (res *model.CycleResult, err error) {
	res = &model.CycleResult{CycleID: uuid.NewString(), StartedAt: s.now()}
	log := s.Logger.WithField("cycle_id", res.CycleID)

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = s.abort(log, PhaseCycle, fmt.Errorf("panic: %v", r))
		}
	}()

	log.Info("sync cycle started")

	quote, err := s.Quotes.FetchQuote(ctx)
	if err != nil {
		return nil, s.abort(log, PhaseFetchQuote, err)
	}
	res.Quote = quote.Ask
	res.PricePerGram = calculator.OuncesToGrams(quote.Ask)
	log.WithFields(logrus.Fields{
		"gold_price": res.Quote,
		"per_gram":   fmt.Sprintf("%.4f", res.PricePerGram),
		"source":     s.Quotes.Name(),
	}).Info("quote fetched")

	items, err := s.Catalog.ListProducts(ctx)
	if err != nil {
		return nil, s.abort(log, PhaseFetchCatalog, err)
	}
	res.Products = len(items)
	log.WithField("products", len(items)).Info("catalog fetched")

	for _, o := range s.processItems(ctx, log, items, res.PricePerGram) {
		res.Add(o)
	}
	res.FinishedAt = s.now()

	s.finalize(log, res)
	return res, nil
}

func (s *Syncer) abort(log logrus.FieldLogger, phase Phase, err error) error {
	kind := Classify(err)
	entry := log.WithFields(logrus.Fields{"phase": phase, "kind": kind, "error": err})
	switch kind {
	case KindUnreachable:
		entry.Error("upstream unreachable, cycle skipped")
	case KindAuth:
		entry.Error("authentication rejected, check credentials")
	case KindMalformed:
		entry.Error("malformed upstream response, cycle skipped before any catalog write")
	case KindTimeout:
		entry.Error("upstream timed out, cycle skipped")
	default:
		entry.Error("sync cycle failed")
	}
	return &CycleError{Phase: phase, Kind: kind, Err: err}
}

func (s *Syncer) finalize(log logrus.FieldLogger, res *model.CycleResult) {
	st := s.State.RecordSync(res.Quote, res.FinishedAt)
	if err := s.Recorder.RecordCycle(res); err != nil {
		log.WithError(err).Warn("record cycle history")
	}
	log.WithFields(logrus.Fields{
		"sync_count": st.SyncCount,
		"gold_price": res.Quote,
		"products":   res.Products,
		"updated":    res.Updated,
		"ineligible": res.Ineligible,
		"failed":     res.Failed,
		"duration":   res.Duration().Round(time.Millisecond).String(),
	}).Info("sync cycle complete")
}

// processItems fans per-product work out over a bounded pool. Each product
// writes only its own slot, so results need no locking.
func (s *Syncer) processItems(ctx context.Context, log logrus.FieldLogger, items []model.CatalogItem, perGram float64) []model.ItemOutcome {
	slots := make([][]model.ItemOutcome, len(items))

	var g errgroup.Group
	g.SetLimit(s.Options.Workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			slots[i] = s.processItem(ctx, log, item, perGram)
			return nil
		})
	}
	// Workers always return nil; errors travel in the outcomes.
	_ = g.Wait()

	var out []model.ItemOutcome
	for _, slot := range slots {
		out = append(out, slot...)
	}
	return out
}

// processItem never lets a failure escape: errors and panics become failed outcomes.
func (s *Syncer) processItem(ctx context.Context, log logrus.FieldLogger, item model.CatalogItem, perGram float64) (outcomes []model.ItemOutcome) {
	log = log.WithField("product_id", item.ID)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			log.WithError(err).Error("product processing panicked")
			outcomes = append(outcomes, failed(model.PriceRecord{ProductID: item.ID, Identifier: item.Identifier}, err))
		}
	}()

	records, err := s.recordsFor(ctx, item)
	if err != nil {
		log.WithFields(logrus.Fields{"kind": Classify(err), "error": err}).Warn("fetch price records failed")
		return []model.ItemOutcome{failed(model.PriceRecord{ProductID: item.ID, Identifier: item.Identifier}, err)}
	}

	for _, rec := range records {
		outcomes = append(outcomes, s.processRecord(ctx, log, rec, perGram))
	}
	return outcomes
}

func (s *Syncer) recordsFor(ctx context.Context, item model.CatalogItem) ([]model.PriceRecord, error) {
	if !s.Options.ResolvePrices {
		return []model.PriceRecord{{
			ID:         item.CurrentPriceRecordID,
			ProductID:  item.ID,
			Name:       item.Name,
			Identifier: item.Identifier,
		}}, nil
	}
	records, err := s.Catalog.ListPrices(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ProductID == "" {
			records[i].ProductID = item.ID
		}
	}
	return records, nil
}

func (s *Syncer) processRecord(ctx context.Context, log logrus.FieldLogger, rec model.PriceRecord, perGram float64) model.ItemOutcome {
	log = log.WithFields(logrus.Fields{"price_id": rec.ID, "sku": rec.Identifier})

	plan := s.Evaluator.Evaluate(rec, perGram)
	if !plan.Eligible {
		log.WithField("reason", plan.Reason).Debug("price record skipped")
		return model.ItemOutcome{
			ProductID:     rec.ProductID,
			PriceRecordID: rec.ID,
			Identifier:    rec.Identifier,
			Status:        model.OutcomeIneligible,
			Reason:        plan.Reason,
		}
	}
	if rec.ID == "" {
		log.Debug("price record has no id, skipped")
		return model.ItemOutcome{
			ProductID:  rec.ProductID,
			Identifier: rec.Identifier,
			Status:     model.OutcomeIneligible,
			Reason:     "no price record id",
		}
	}

	bd := plan.Breakdown
	upd := catalog.PriceUpdate{
		Name:     rec.Name,
		Type:     rec.Type,
		Currency: rec.Currency,
		Amount:   float64(bd.FinalPrice),
	}
	if err := s.Catalog.UpdatePrice(ctx, rec.ProductID, rec.ID, upd); err != nil {
		log.WithFields(logrus.Fields{"kind": Classify(err), "error": err}).Warn("price update failed")
		return failed(rec, err)
	}

	log.WithFields(logrus.Fields{
		"purity":      plan.Attributes.PurityGrade,
		"weight_g":    plan.Attributes.WeightGrams,
		"base":        bd.BaseCost,
		"markup":      bd.Markup,
		"tax":         bd.Tax,
		"old_amount":  rec.Amount,
		"final_price": bd.FinalPrice,
	}).Info("price updated")

	return model.ItemOutcome{
		ProductID:     rec.ProductID,
		PriceRecordID: rec.ID,
		Identifier:    rec.Identifier,
		Status:        model.OutcomeUpdated,
		Breakdown:     &bd,
	}
}

func failed(rec model.PriceRecord, err error) model.ItemOutcome {
	return model.ItemOutcome{
		ProductID:     rec.ProductID,
		PriceRecordID: rec.ID,
		Identifier:    rec.Identifier,
		Status:        model.OutcomeFailed,
		Reason:        fmt.Sprintf("%s: %v", Classify(err), err),
		Err:           err,
	}
}
